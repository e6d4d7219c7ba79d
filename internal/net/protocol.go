package net

import "cartograph/internal/game"

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "state"
	State *StateView `json:"state,omitempty"`

	// For "choice"
	Choice *ChoiceView `json:"choice,omitempty"`

	// For "rejected"
	Reason string `json:"reason,omitempty"`

	// For "game_over"
	Winner int          `json:"winner,omitempty"`
	Result string       `json:"result,omitempty"`
	Scores *game.Scores `json:"scores,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes one card.
type CardView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ChoiceView is a pending modal question for one player.
type ChoiceView struct {
	Kind    string     `json:"kind"`
	Player  int        `json:"player"`
	Card    string     `json:"card,omitempty"`
	Prompt  string     `json:"prompt"`
	Options []CardView `json:"options,omitempty"`
}

// StateView is the session from one player's perspective.
type StateView struct {
	GameID            string              `json:"gameId"`
	You               int                 `json:"you"`
	Board             []int               `json:"board"`
	Hand              []CardView          `json:"hand"`
	OpponentHandCount int                 `json:"opponentHandCount"`
	DeckCount         int                 `json:"deckCount"`
	DiscardPile       []game.DiscardEntry `json:"discardPile"`
	CurrentPlayer     int                 `json:"currentPlayer"`
	Phase             string              `json:"phase"`
	IsYourTurn        bool                `json:"isYourTurn"`
	ActiveCard        string              `json:"activeCard,omitempty"`
	PlaysRemaining    int                 `json:"playsRemaining"`
	ValidSquares      []int               `json:"validSquares,omitempty"`
	HotspotAnchor     int                 `json:"hotspotAnchor"`
	LastPlayedCard    string              `json:"lastPlayedCard,omitempty"`
	Series            game.SeriesScore    `json:"series"`
	Log               []string            `json:"log,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake): resume an existing game by id.
	GameID string `json:"game_id,omitempty"`

	// For "select_card" and "resolve_choice"
	CardID int `json:"card_id,omitempty"`

	// For "click_cell". Square 0 is valid and off-board values are
	// meaningful (removal moves), so no omitempty.
	Square int `json:"square"`

	// For "resolve_choice"
	Direction string `json:"direction,omitempty"`
	Layer     string `json:"layer,omitempty"`
	Discard   bool   `json:"discard,omitempty"`
	Cancel    bool   `json:"cancel,omitempty"`
}
