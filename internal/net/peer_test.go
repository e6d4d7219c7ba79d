package net

import (
	"testing"

	"cartograph/internal/game"
	"cartograph/internal/log"
)

func testEngine(t *testing.T) *game.Engine {
	t.Helper()
	state := game.SessionState{
		GameID:                   "abcde",
		PlayerOneHand:            []int{4, 7},
		PlayerTwoHand:            []int{2, 3, 5},
		RemainingDeck:            []int{9, 10},
		CurrentPlayer:            1,
		LastPlayedCard:           99,
		PlayerOnePlayedFirstTurn: true,
		PlayerTwoPlayedFirstTurn: true,
	}
	return game.NewEngine(game.RestoreSession(state), log.NewMemoryLogger())
}

func TestBuildStateViewPerspective(t *testing.T) {
	e := testEngine(t)

	sv := BuildStateView(e, game.PlayerOne)
	if sv.You != 1 || !sv.IsYourTurn {
		t.Errorf("view = you %d, yourTurn %v", sv.You, sv.IsYourTurn)
	}
	if len(sv.Hand) != 2 {
		t.Errorf("own hand has %d cards, want 2", len(sv.Hand))
	}
	if sv.OpponentHandCount != 3 {
		t.Errorf("opponent hand count = %d, want 3", sv.OpponentHandCount)
	}
	if sv.DeckCount != 2 || sv.GameID != "abcde" {
		t.Errorf("view = %+v", sv)
	}

	other := BuildStateView(e, game.PlayerTwo)
	if other.IsYourTurn {
		t.Error("it is not player two's turn")
	}
	if len(other.Hand) != 3 || other.OpponentHandCount != 2 {
		t.Error("perspectives should swap hand visibility")
	}
}

func TestBuildStateViewHidesOpponentCards(t *testing.T) {
	e := testEngine(t)
	sv := BuildStateView(e, game.PlayerOne)
	for _, cv := range sv.Hand {
		if cv.ID == 2 || cv.ID == 3 || cv.ID == 5 {
			t.Errorf("opponent card %d leaked into the view", cv.ID)
		}
	}
}

func TestBuildChoiceView(t *testing.T) {
	pc := &game.PendingChoice{
		Kind:    game.ChoiceDeckPick,
		Player:  game.PlayerTwo,
		CardID:  20,
		Options: []int{5, 3},
		Prompt:  "Choose a card from the top of the deck",
	}
	cv := BuildChoiceView(pc)
	if cv.Kind != "deck pick" || cv.Player != 2 {
		t.Errorf("view = %+v", cv)
	}
	if len(cv.Options) != 2 || cv.Options[0].Name != "Interpolate" {
		t.Errorf("options = %+v", cv.Options)
	}
	if BuildChoiceView(nil) != nil {
		t.Error("nil choice yields nil view")
	}
}

func TestChoiceValueFromMessage(t *testing.T) {
	v, err := ChoiceValueFromMessage(ClientMessage{Direction: "south"})
	if err != nil || v.Direction != game.South {
		t.Errorf("direction = %v, err %v", v.Direction, err)
	}

	v, err = ChoiceValueFromMessage(ClientMessage{Layer: "polygons"})
	if err != nil || v.Layer != game.LayerPolygons {
		t.Errorf("layer = %v, err %v", v.Layer, err)
	}

	if _, err := ChoiceValueFromMessage(ClientMessage{Direction: "up"}); err == nil {
		t.Error("unknown direction should fail")
	}
	if _, err := ChoiceValueFromMessage(ClientMessage{Layer: "roads"}); err == nil {
		t.Error("unknown layer should fail")
	}

	v, err = ChoiceValueFromMessage(ClientMessage{CardID: 4, Discard: true, Cancel: true})
	if err != nil || v.CardID != 4 || !v.Discard || !v.Cancelled {
		t.Errorf("value = %+v, err %v", v, err)
	}
}
