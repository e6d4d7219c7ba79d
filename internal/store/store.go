// Package store persists session snapshots and fans out change
// notifications, standing in for the synchronized database the game was
// originally built on. Writes are last-writer-wins: the server serializes
// engine input, so concurrent conflicting writes do not occur in practice.
package store

import (
	"context"
	"errors"

	"cartograph/internal/game"
)

// ErrNotFound is returned when no session exists under the given id.
var ErrNotFound = errors.New("game not found")

// Store saves and loads session snapshots keyed by game id.
type Store interface {
	// Save upserts a snapshot and notifies subscribers of its game id.
	Save(ctx context.Context, state game.SessionState) error
	// Load returns the latest snapshot, or ErrNotFound.
	Load(ctx context.Context, gameID string) (game.SessionState, error)
	// Delete removes a game. Deleting an absent game is a no-op.
	Delete(ctx context.Context, gameID string) error
	// Subscribe registers fn to run on every save of gameID until the
	// returned cancel function is called. fn runs on the saver's
	// goroutine and must not block.
	Subscribe(gameID string, fn func(game.SessionState)) (cancel func())
}
