package net

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"

	"cartograph/internal/game"
	"cartograph/internal/log"
	"cartograph/internal/store"
)

// Server hosts one game between two TCP clients. The host plays seat one
// over an in-process pipe; the joiner is the accepted connection.
type Server struct {
	Port   string
	Config game.GameConfig
	Store  store.Store
	// GameID resumes a stored game instead of dealing a new one.
	GameID string
}

// broadcastLogger keeps events in memory and forwards each one to both
// players as it happens.
type broadcastLogger struct {
	log.MemoryLogger
	peers []*Peer
}

func (l *broadcastLogger) Log(event log.GameEvent) {
	l.MemoryLogger.Log(event)
	for _, p := range l.peers {
		_ = p.Notify(event)
	}
}

type playerMsg struct {
	player game.Owner
	msg    ClientMessage
	err    error
}

// Run starts the server, waits for a joiner, then pumps the game to
// completion or disconnect.
func (s *Server) Run(ctx context.Context) error {
	st := s.Store
	if st == nil {
		st = store.NewMemoryStore()
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	joiner := NewPeer(conn, game.PlayerTwo)
	joinMsg, err := joiner.Recv()
	if err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != "join" {
		return fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}

	session, err := s.openSession(ctx, st)
	if err != nil {
		return err
	}
	fmt.Printf("Game ID: %s\n", session.GameID)

	hostConn, hostServerConn := net.Pipe()
	host := NewPeer(hostServerConn, game.PlayerOne)
	peers := []*Peer{host, joiner}

	logger := &broadcastLogger{peers: peers}
	engine := game.NewEngine(session, logger)

	errCh := make(chan error, 1)
	go func() {
		client := &Client{conn: hostConn, playerName: "P1"}
		errCh <- client.RunREPL(ctx)
	}()

	msgCh := make(chan playerMsg)
	for _, p := range peers {
		go func(p *Peer) {
			for {
				msg, err := p.Recv()
				msgCh <- playerMsg{player: p.player, msg: msg, err: err}
				if err != nil {
					return
				}
			}
		}(p)
	}

	s.sync(ctx, st, engine, peers)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("host client: %w", err)
			}
			return nil
		case pm := <-msgCh:
			if pm.err != nil {
				return fmt.Errorf("%s disconnected: %w", pm.player, pm.err)
			}
			if err := apply(engine, pm.player, pm.msg); err != nil {
				_ = peers[int(pm.player)-1].Send(ServerMessage{Type: "rejected", Reason: err.Error()})
				continue
			}
			s.sync(ctx, st, engine, peers)
			if engine.Phase() == game.PhaseGameOver {
				s.sendGameOver(engine, peers)
				return nil
			}
		}
	}
}

func (s *Server) openSession(ctx context.Context, st store.Store) (*game.Session, error) {
	if s.GameID != "" {
		state, err := st.Load(ctx, s.GameID)
		if err != nil {
			return nil, fmt.Errorf("resume game %s: %w", s.GameID, err)
		}
		return game.RestoreSession(state), nil
	}
	cfg := s.Config
	if cfg.HandSize == 0 {
		cfg = game.DefaultConfig()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return game.NewSession(cfg, rng), nil
}

// sync persists a snapshot and pushes fresh per-player views, plus the
// pending choice to whichever player owes an answer.
func (s *Server) sync(ctx context.Context, st store.Store, engine *game.Engine, peers []*Peer) {
	if err := st.Save(ctx, engine.Session().Snapshot()); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("warning: save game state: %v\n", err)
	}
	for _, p := range peers {
		_ = p.Send(ServerMessage{Type: "state", State: BuildStateView(engine, p.player)})
	}
	if pc := engine.PendingChoice(); pc != nil {
		_ = peers[int(pc.Player)-1].Send(ServerMessage{Type: "choice", Choice: BuildChoiceView(pc)})
	}
}

func (s *Server) sendGameOver(engine *game.Engine, peers []*Peer) {
	result := "It's a tie!"
	switch engine.Winner() {
	case game.PlayerOne:
		result = "Player 1 wins!"
	case game.PlayerTwo:
		result = "Player 2 wins!"
	}
	msg := ServerMessage{
		Type:   "game_over",
		Winner: int(engine.Winner()),
		Result: result,
		Scores: engine.Scores(),
	}
	for _, p := range peers {
		_ = p.Send(msg)
	}
}

// apply maps one client message onto an engine entry point.
func apply(engine *game.Engine, player game.Owner, msg ClientMessage) error {
	switch msg.Type {
	case "select_card":
		return engine.SelectCard(player, msg.CardID)
	case "click_cell":
		return engine.ClickCell(player, msg.Square)
	case "resolve_choice":
		v, err := ChoiceValueFromMessage(msg)
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
