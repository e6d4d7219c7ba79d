package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	stdnet "net"
	"sync"
	"time"

	"cartograph/internal/game"
	"cartograph/internal/log"
	cartnet "cartograph/internal/net"
	"cartograph/internal/store"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []cartnet.EventView `json:"events"`
	State    *cartnet.StateView  `json:"state,omitempty"`
	Choice   *cartnet.ChoiceView `json:"choice,omitempty"`
	Waiting  string              `json:"waiting,omitempty"`
	GameOver bool                `json:"game_over"`
	Winner   int                 `json:"winner,omitempty"`
	Result   string              `json:"result,omitempty"`
	Scores   *game.Scores        `json:"scores,omitempty"`
	Port     string              `json:"port,omitempty"`
}

// GameSession holds one hosted game. The agent plays its seat through MCP
// tool calls; the human seat is a TCP client accepted at session start.
type GameSession struct {
	mu     sync.Mutex
	engine *game.Engine
	st     store.Store
	agent  game.Owner
	human  *cartnet.Peer

	listener stdnet.Listener
	events   []cartnet.EventView
	humanErr error
}

// sessionLogger keeps events in memory, buffers them for the next tool
// response, and pushes each one to the human's connection.
type sessionLogger struct {
	log.MemoryLogger
	sess *GameSession
}

func (l *sessionLogger) Log(event log.GameEvent) {
	l.MemoryLogger.Log(event)
	l.sess.events = append(l.sess.events, cartnet.EventView{
		Turn:    event.Turn,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	})
	_ = l.sess.human.Notify(event)
}

// NewGameSession listens on the given port, waits for the human player to
// connect, then deals (or resumes) a game. agentSeat is 1 or 2.
func NewGameSession(cfg game.GameConfig, agentSeat int, port, gameID string, st store.Store) (*GameSession, error) {
	if st == nil {
		st = store.NewMemoryStore()
	}

	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	// Blocks until the human runs `cartograph-cli join`.
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	agent := game.Owner(agentSeat)
	human := cartnet.NewPeer(conn, agent.Opponent())

	joinMsg, err := human.Recv()
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != "join" {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}
	if gameID == "" {
		gameID = joinMsg.GameID
	}

	session, err := openSession(context.Background(), cfg, gameID, st)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, err
	}

	sess := &GameSession{
		st:       st,
		agent:    agent,
		human:    human,
		listener: ln,
	}
	logger := &sessionLogger{sess: sess}
	sess.engine = game.NewEngine(session, logger)

	sess.mu.Lock()
	sess.syncLocked(context.Background())
	sess.mu.Unlock()

	go sess.humanLoop()

	return sess, nil
}

func openSession(ctx context.Context, cfg game.GameConfig, gameID string, st store.Store) (*game.Session, error) {
	if gameID != "" {
		state, err := st.Load(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("resume game %s: %w", gameID, err)
		}
		return game.RestoreSession(state), nil
	}
	if cfg.HandSize == 0 {
		cfg = game.DefaultConfig()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return game.NewSession(cfg, rng), nil
}

// humanLoop pumps the human player's messages into the engine.
func (s *GameSession) humanLoop() {
	for {
		msg, err := s.human.Recv()
		if err != nil {
			s.mu.Lock()
			s.humanErr = fmt.Errorf("human disconnected: %v", err)
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		if err := applyMessage(s.engine, s.agent.Opponent(), msg); err != nil {
			_ = s.human.Send(cartnet.ServerMessage{Type: "rejected", Reason: err.Error()})
			s.mu.Unlock()
			continue
		}
		s.syncLocked(context.Background())
		over := s.engine.Phase() == game.PhaseGameOver
		if over {
			s.sendGameOverLocked()
		}
		s.mu.Unlock()
		if over {
			return
		}
	}
}

// applyMessage maps one client message onto an engine entry point.
func applyMessage(engine *game.Engine, player game.Owner, msg cartnet.ClientMessage) error {
	switch msg.Type {
	case "select_card":
		return engine.SelectCard(player, msg.CardID)
	case "click_cell":
		return engine.ClickCell(player, msg.Square)
	case "resolve_choice":
		v, err := cartnet.ChoiceValueFromMessage(msg)
		if err != nil {
			return err
		}
		return engine.ResolveChoice(player, v)
	case "end_turn":
		return engine.EndTurnEarly(player)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// syncLocked persists a snapshot and pushes a fresh view to the human,
// plus the pending choice when the human owes an answer. Callers hold mu.
func (s *GameSession) syncLocked(ctx context.Context) {
	if err := s.st.Save(ctx, s.engine.Session().Snapshot()); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("warning: save game state: %v\n", err)
	}
	_ = s.human.Send(cartnet.ServerMessage{Type: "state", State: cartnet.BuildStateView(s.engine, s.agent.Opponent())})
	if pc := s.engine.PendingChoice(); pc != nil && pc.Player != s.agent {
		_ = s.human.Send(cartnet.ServerMessage{Type: "choice", Choice: cartnet.BuildChoiceView(pc)})
	}
}

func (s *GameSession) sendGameOverLocked() {
	result := "It's a tie!"
	switch s.engine.Winner() {
	case game.PlayerOne:
		result = "Player 1 wins!"
	case game.PlayerTwo:
		result = "Player 2 wins!"
	}
	_ = s.human.Send(cartnet.ServerMessage{
		Type:   "game_over",
		Winner: int(s.engine.Winner()),
		Result: result,
		Scores: s.engine.Scores(),
	})
	s.human.Close()
	s.listener.Close()
}

// drainEventsLocked returns accumulated events and clears the buffer.
// Callers hold mu.
func (s *GameSession) drainEventsLocked() []cartnet.EventView {
	events := s.events
	s.events = nil
	return events
}

// respondLocked builds the tool response for the agent's seat. Callers
// hold mu.
func (s *GameSession) respondLocked() *ToolResponse {
	resp := &ToolResponse{
		Events: s.drainEventsLocked(),
		State:  cartnet.BuildStateView(s.engine, s.agent),
	}
	if resp.Events == nil {
		resp.Events = []cartnet.EventView{}
	}

	if s.humanErr != nil {
		resp.GameOver = true
		resp.Result = s.humanErr.Error()
		return resp
	}

	if s.engine.Phase() == game.PhaseGameOver {
		resp.GameOver = true
		resp.Winner = int(s.engine.Winner())
		resp.Scores = s.engine.Scores()
		switch s.engine.Winner() {
		case game.Empty:
			resp.Result = "It's a tie!"
		case s.agent:
			resp.Result = "You win!"
		default:
			resp.Result = "The human wins!"
		}
		return resp
	}

	if pc := s.engine.PendingChoice(); pc != nil {
		if pc.Player == s.agent {
			resp.Choice = cartnet.BuildChoiceView(pc)
		} else {
			resp.Waiting = "human player is answering a choice"
		}
	} else if s.engine.Actor() != s.agent {
		resp.Waiting = "human player's turn"
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
