package game

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := testSession([]int{1, 2}, []int{3}, []int{4, 5})
	s.Board = boardWith([]int{0, 1}, []int{99})
	s.Previous[0] = boardWith([]int{0}, nil)
	s.Discard = []DiscardEntry{{CardID: 6, Player: PlayerTwo}}
	s.Pending = []PendingMove{{Kind: PendingModelBuilder, Player: PlayerOne, CardID: 5}}
	s.Current = PlayerTwo
	s.LastPlayed = 6
	s.LastPlayedBy = PlayerTwo
	s.Series = SeriesScore{PlayerOne: 1}
	s.Map = MapView{Latitude: 40.7, Longitude: -74.0, Zoom: 12, Basemap: "streets"}
	s.AppendLog("first line")

	state := s.Snapshot()
	restored := RestoreSession(state)

	if restored.GameID != s.GameID || restored.Board != s.Board {
		t.Error("board state should round-trip")
	}
	if restored.Previous[0] != s.Previous[0] || restored.Previous[1] != s.Previous[1] {
		t.Error("previous snapshots should round-trip")
	}
	if len(restored.Hand(PlayerOne)) != 2 || len(restored.Hand(PlayerTwo)) != 1 {
		t.Error("hands should round-trip")
	}
	if restored.Current != PlayerTwo || restored.LastPlayed != 6 || restored.LastPlayedBy != PlayerTwo {
		t.Error("turn bookkeeping should round-trip")
	}
	if len(restored.Pending) != 1 || restored.Pending[0] != s.Pending[0] {
		t.Error("pending moves should round-trip")
	}
	if restored.Series != s.Series || restored.Map != s.Map {
		t.Error("series and map chrome should round-trip")
	}
	if len(restored.Log) != 1 || restored.Log[0] != "first line" {
		t.Error("activity log should round-trip")
	}
	if !restored.OpeningDone[0] || !restored.OpeningDone[1] {
		t.Error("opening flags should round-trip")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := testSession([]int{1, 2}, nil, []int{4})
	state := s.Snapshot()

	s.Hands[0][0] = 9
	s.Deck[0] = 9

	if state.PlayerOneHand[0] != 1 || state.RemainingDeck[0] != 4 {
		t.Error("mutating the session must not change the snapshot")
	}
}

func TestRestoreDefaultsCurrentPlayer(t *testing.T) {
	restored := RestoreSession(SessionState{GameID: "abcde"})
	if restored.Current != PlayerOne {
		t.Errorf("current = %s, want player one", restored.Current)
	}
}

func TestSessionStateJSONFieldNames(t *testing.T) {
	state := testSession([]int{1}, nil, nil).Snapshot()
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"gameId", "gameState", "playerOneHand", "remainingDeck", "discardPile", "currentPlayer", "cumulativeScore"} {
		if !json.Valid(data) {
			t.Fatal("invalid json")
		}
		if !containsKey(data, key) {
			t.Errorf("snapshot json missing %q", key)
		}
	}
}

func containsKey(data []byte, key string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}

func TestAppendLogBounded(t *testing.T) {
	s := testSession(nil, nil, nil)
	for i := 0; i < ActivityLogLimit+10; i++ {
		s.AppendLog(fmt.Sprintf("line %d", i))
	}
	if len(s.Log) != ActivityLogLimit {
		t.Fatalf("log has %d lines, want %d", len(s.Log), ActivityLogLimit)
	}
	if s.Log[0] != "line 10" {
		t.Errorf("oldest surviving line = %q, want line 10", s.Log[0])
	}
}

func TestHandOperations(t *testing.T) {
	s := testSession([]int{1, 2, 3}, nil, []int{7, 8})

	if !s.RemoveFromHand(PlayerOne, 2) {
		t.Fatal("removing a held card should succeed")
	}
	if s.RemoveFromHand(PlayerOne, 2) {
		t.Error("removing it again should fail")
	}
	if s.HandContains(PlayerOne, 2) {
		t.Error("card 2 should be gone")
	}

	top, ok := s.DrawCard()
	if !ok || top != 7 {
		t.Errorf("draw = %d, want the deck top 7", top)
	}
	if !s.RemoveFromDeck(8) {
		t.Error("removing from the deck should succeed")
	}
	if _, ok := s.DrawCard(); ok {
		t.Error("the deck should be empty now")
	}
}
