package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thehex/board/internal/core/domain"
)

// minRevocationTTL keeps a revocation alive briefly even when the token
// has already expired, so a key is never written without expiry.
const minRevocationTTL = time.Second

// SessionStore records revoked session ids until their token would have
// expired anyway.
// Key format: session:revoked:<session_id>
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Revoke marks sessionID as ended until the given instant.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := revocationTTL(s.now(), until)
	if err := s.client.Set(ctx, revokedKey(sessionID), "1", ttl).Err(); err != nil {
		return domain.Collaborator("revoke session", err)
	}
	return nil
}

// IsRevoked reports whether sessionID was ended by a logout.
func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, domain.Collaborator("session lookup", err)
	}
	return n > 0, nil
}

func revokedKey(sessionID string) string {
	return fmt.Sprintf("session:revoked:%s", sessionID)
}

func revocationTTL(now, until time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}
