// Package session implements server-side login session storage. A session
// is created at login, resolved on every request carrying the session
// cookie, and deleted at logout. Two backends exist: an in-process map
// (the default) and Redis for deployments that want sessions to survive
// restarts or be shared between replicas.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/avelina-cafes/cafewifi/internal/model"
)

// ErrNotFound is returned when a session id does not resolve to a live
// session: unknown, expired, or deleted by logout. Callers treat all
// three the same way, as an anonymous request.
var ErrNotFound = errors.New("session not found")

// Store is the persistence contract for login sessions.
type Store interface {
	// Create mints a new session for the user with the given lifetime.
	Create(ctx context.Context, userID int64, ttl time.Duration) (*model.Session, error)
	// Get resolves a session id. Expired sessions yield ErrNotFound.
	Get(ctx context.Context, id string) (*model.Session, error)
	// Delete removes a session. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
