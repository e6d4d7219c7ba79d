package store

import (
	"context"
	"sync"

	"cartograph/internal/game"
)

// subscribers is the fan-out shared by store implementations.
type subscribers struct {
	mu    sync.Mutex
	next  int
	byKey map[string]map[int]func(game.SessionState)
}

func (s *subscribers) add(gameID string, fn func(game.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byKey == nil {
		s.byKey = make(map[string]map[int]func(game.SessionState))
	}
	if s.byKey[gameID] == nil {
		s.byKey[gameID] = make(map[int]func(game.SessionState))
	}
	s.next++
	id := s.next
	s.byKey[gameID][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.byKey[gameID], id)
	}
}

func (s *subscribers) notify(state game.SessionState) {
	s.mu.Lock()
	fns := make([]func(game.SessionState), 0, len(s.byKey[state.GameID]))
	for _, fn := range s.byKey[state.GameID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

// MemoryStore is the in-process Store used by single-binary servers and
// tests.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]game.SessionState
	subs   subscribers
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]game.SessionState)}
}

func (m *MemoryStore) Save(ctx context.Context, state game.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.states[state.GameID] = state
	m.mu.Unlock()
	m.subs.notify(state)
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, gameID string) (game.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return game.SessionState{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[gameID]
	if !ok {
		return game.SessionState{}, ErrNotFound
	}
	return state, nil
}

func (m *MemoryStore) Delete(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, gameID)
	return nil
}

func (m *MemoryStore) Subscribe(gameID string, fn func(game.SessionState)) func() {
	return m.subs.add(gameID, fn)
}

var _ Store = (*MemoryStore)(nil)
