package net

import (
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"sync"

	"cartograph/internal/game"
	"cartograph/internal/log"
)

// Peer wraps one player's connection with a write lock so the event
// broadcaster and the state sender do not interleave frames.
type Peer struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player game.Owner
	mu     sync.Mutex
}

// NewPeer wraps a connection for the given seat.
func NewPeer(conn net.Conn, player game.Owner) *Peer {
	return &Peer{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// Send writes one message to the client.
func (p *Peer) Send(msg ServerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(msg)
}

// Recv reads the next message from the client.
func (p *Peer) Recv() (ClientMessage, error) {
	var msg ClientMessage
	err := p.dec.Decode(&msg)
	return msg, err
}

// Close closes the underlying connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}

// Notify forwards a game event to the client.
func (p *Peer) Notify(event log.GameEvent) error {
	return p.Send(ServerMessage{
		Type: "notify",
		Event: &EventView{
			Turn:    event.Turn,
			Player:  event.Player,
			Type:    event.Type.String(),
			Card:    event.Card,
			Details: event.Details,
		},
	})
}

// BuildStateView creates a StateView from the perspective of one player.
// Only that player's own hand is listed; the opponent contributes a count.
func BuildStateView(e *game.Engine, player game.Owner) *StateView {
	s := e.Session()
	sv := &StateView{
		GameID:            s.GameID,
		You:               int(player),
		Board:             make([]int, game.BoardSize),
		OpponentHandCount: len(s.Hand(player.Opponent())),
		DeckCount:         len(s.Deck),
		DiscardPile:       append([]game.DiscardEntry(nil), s.Discard...),
		CurrentPlayer:     int(s.Current),
		Phase:             e.Phase().String(),
		IsYourTurn:        e.Actor() == player,
		PlaysRemaining:    e.PlaysRemaining(),
		HotspotAnchor:     e.HotspotAnchor(),
		LastPlayedCard:    game.CardName(s.LastPlayed),
		Series:            s.Series,
		Log:               append([]string(nil), s.Log...),
	}
	for i, o := range s.Board {
		sv.Board[i] = int(o)
	}
	for _, id := range s.Hand(player) {
		sv.Hand = append(sv.Hand, CardView{ID: id, Name: game.CardName(id)})
	}
	if card := e.ActiveCard(); card != nil {
		sv.ActiveCard = card.Name
	}
	if squares := e.ValidSquares(); len(squares) > 0 {
		sort.Ints(squares)
		sv.ValidSquares = squares
	}
	return sv
}

// BuildChoiceView converts the engine's pending choice for the wire.
func BuildChoiceView(pc *game.PendingChoice) *ChoiceView {
	if pc == nil {
		return nil
	}
	cv := &ChoiceView{
		Kind:   pc.Kind.String(),
		Player: int(pc.Player),
		Card:   game.CardName(pc.CardID),
		Prompt: pc.Prompt,
	}
	for _, id := range pc.Options {
		cv.Options = append(cv.Options, CardView{ID: id, Name: game.CardName(id)})
	}
	return cv
}

// ChoiceValueFromMessage maps a resolve_choice message onto the engine's
// choice value.
func ChoiceValueFromMessage(msg ClientMessage) (game.ChoiceValue, error) {
	v := game.ChoiceValue{CardID: msg.CardID, Discard: msg.Discard, Cancelled: msg.Cancel}
	if msg.Direction != "" {
		dir, ok := game.ParseDirection(msg.Direction)
		if !ok {
			return v, fmt.Errorf("unknown direction %q", msg.Direction)
		}
		v.Direction = dir
	}
	if msg.Layer != "" {
		layer, ok := game.ParseLayer(msg.Layer)
		if !ok {
			return v, fmt.Errorf("unknown layer %q", msg.Layer)
		}
		v.Layer = layer
	}
	return v, nil
}
