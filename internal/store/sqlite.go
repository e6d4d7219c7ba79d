package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cartograph/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_states (
	game_id    TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStore persists session snapshots in a local SQLite database.
// Snapshots are stored as one JSON document per game, so the schema never
// needs to track the session record's shape.
type SQLiteStore struct {
	sqlDB *sql.DB
	subs  subscribers
}

// OpenSQLite opens (creating if needed) a SQLite store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, state game.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(state.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO game_states (game_id, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		state.GameID,
		string(doc),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	s.subs.notify(state)
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, gameID string) (game.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return game.SessionState{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT state FROM game_states WHERE game_id = ?`, gameID)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.SessionState{}, ErrNotFound
		}
		return game.SessionState{}, fmt.Errorf("load game state: %w", err)
	}
	var state game.SessionState
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return game.SessionState{}, fmt.Errorf("decode session state: %w", err)
	}
	return state, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM game_states WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("delete game state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Subscribe(gameID string, fn func(game.SessionState)) func() {
	return s.subs.add(gameID, fn)
}

var _ Store = (*SQLiteStore)(nil)
