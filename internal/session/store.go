package session

import (
	"context"

	"realmbot/internal/domain"
)

// Store persists per-user dialogue state across process restarts.
// Get returns an idle session when no state exists for the user.
type Store interface {
	Get(ctx context.Context, userID int64) (domain.Session, error)
	Set(ctx context.Context, userID int64, s domain.Session) error
	Clear(ctx context.Context, userID int64) error
}
