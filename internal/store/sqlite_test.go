package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cartograph/internal/game"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	state := game.SessionState{
		GameID:        "abcde",
		GameState:     make([]int, game.BoardSize),
		PlayerOneHand: []int{1, 99},
		CurrentPlayer: 1,
		GameLog:       []string{"T1   P1 plays Buffer"},
	}
	state.GameState[42] = 2

	if err := st.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(ctx, "abcde")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GameState[42] != 2 || len(loaded.PlayerOneHand) != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.GameLog) != 1 {
		t.Error("log should round-trip through the JSON document")
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.Save(ctx, game.SessionState{GameID: "abcde", CurrentPlayer: 1})
	if err := st.Save(ctx, game.SessionState{GameID: "abcde", CurrentPlayer: 2}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := st.Load(ctx, "abcde")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CurrentPlayer != 2 {
		t.Errorf("current = %d, want the newer snapshot", loaded.CurrentPlayer)
	}
}

func TestSQLiteStoreMissingGame(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.Save(ctx, game.SessionState{GameID: "abcde"})
	if err := st.Delete(ctx, "abcde"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, "abcde"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStoreRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Error("blank path should be rejected")
	}
}

func TestSQLiteStoreRejectsEmptyGameID(t *testing.T) {
	st := openTestStore(t)
	if err := st.Save(context.Background(), game.SessionState{}); err == nil {
		t.Error("a snapshot without a game id should be rejected")
	}
}
