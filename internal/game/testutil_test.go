package game

import (
	"testing"

	"cartograph/internal/log"
)

// testSession builds a session with both opening turns already done, so
// tests can deal exactly the cards a scenario needs.
func testSession(p1Hand, p2Hand, deck []int) *Session {
	s := &Session{
		GameID:       "test0",
		Current:      PlayerOne,
		LastPlayed:   OpeningCardID,
		LastPlayedBy: PlayerOne,
	}
	s.Hands[0] = append([]int(nil), p1Hand...)
	s.Hands[1] = append([]int(nil), p2Hand...)
	s.Deck = append([]int(nil), deck...)
	s.OpeningDone = [2]bool{true, true}
	return s
}

func newTestEngine(s *Session) (*Engine, *log.MemoryLogger) {
	logger := log.NewMemoryLogger()
	return NewEngine(s, logger), logger
}

// effectEngine returns an engine suitable for invoking card hooks directly.
func effectEngine() (*Engine, *log.MemoryLogger) {
	return newTestEngine(testSession(nil, nil, nil))
}

// boardWith places the given squares for each player.
func boardWith(p1, p2 []int) Board {
	var b Board
	for _, sq := range p1 {
		b[sq] = PlayerOne
	}
	for _, sq := range p2 {
		b[sq] = PlayerTwo
	}
	return b
}

func mustSelect(t *testing.T, e *Engine, p Owner, cardID int) {
	t.Helper()
	if err := e.SelectCard(p, cardID); err != nil {
		t.Fatalf("SelectCard(%s, %d): %v", p, cardID, err)
	}
}

func mustClick(t *testing.T, e *Engine, p Owner, sq int) {
	t.Helper()
	if err := e.ClickCell(p, sq); err != nil {
		t.Fatalf("ClickCell(%s, %d): %v", p, sq, err)
	}
}

func mustResolve(t *testing.T, e *Engine, p Owner, v ChoiceValue) {
	t.Helper()
	if err := e.ResolveChoice(p, v); err != nil {
		t.Fatalf("ResolveChoice(%s): %v", p, err)
	}
}

// countOwned returns how many of the given squares the player holds.
func countOwned(b Board, p Owner, squares []int) int {
	n := 0
	for _, sq := range squares {
		if b[sq] == p {
			n++
		}
	}
	return n
}
