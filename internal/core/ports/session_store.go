package ports

import (
	"context"
	"time"
)

// SessionStore tracks sessions that were ended before their token expired.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
