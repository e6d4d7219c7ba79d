package store

import (
	"context"
	"errors"
	"testing"

	"cartograph/internal/game"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	state := game.SessionState{GameID: "abcde", CurrentPlayer: 2, RemainingDeck: []int{3, 4}}
	if err := st.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(ctx, "abcde")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CurrentPlayer != 2 || len(loaded.RemainingDeck) != 2 {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := st.Delete(ctx, "abcde"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, "abcde"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreSubscribe(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var got []string
	cancel := st.Subscribe("abcde", func(s game.SessionState) {
		got = append(got, s.GameID)
	})

	st.Save(ctx, game.SessionState{GameID: "abcde"})
	st.Save(ctx, game.SessionState{GameID: "other"})
	if len(got) != 1 {
		t.Fatalf("subscriber saw %d saves, want only its own game", len(got))
	}

	cancel()
	st.Save(ctx, game.SessionState{GameID: "abcde"})
	if len(got) != 1 {
		t.Error("cancelled subscriber should see no further saves")
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := st.Save(ctx, game.SessionState{GameID: "abcde"}); err == nil {
		t.Error("save with a cancelled context should fail")
	}
}
