package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID      map[string]*domain.Account
	nextID    int
	createN   int
	updateN   int
	findErr   error
	updateErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) seed(a *domain.Account) *domain.Account {
	r.byID[a.ID] = cloneAccount(a)
	return a
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.createN++
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrAccountExists
		}
	}
	r.nextID++
	stored := cloneAccount(a)
	stored.ID = fmt.Sprintf("acct-%d", r.nextID)
	r.byID[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, fields domain.AccountUpdate) (*domain.Account, error) {
	r.updateN++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if fields.GrantMembership {
		a.IsMember = true
	}
	return cloneAccount(a), nil
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	stored    []*domain.Message
	insertErr error
	listErr   error
	degraded  bool
	names     map[string]domain.AuthorName
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{names: make(map[string]domain.AuthorName)}
}

func (r *stubMessageRepo) Insert(_ context.Context, m *domain.Message) (*domain.Message, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := *m
	clone.ID = fmt.Sprintf("msg-%d", len(r.stored)+1)
	r.stored = append(r.stored, &clone)
	out := clone
	return &out, nil
}

// ListWithAuthors mirrors the Mongo repository: newest first, author joined
// unless the stub is marked degraded.
func (r *stubMessageRepo) ListWithAuthors(_ context.Context) (*domain.MessageFeed, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	feed := &domain.MessageFeed{Mode: domain.FeedWithAuthor}
	if r.degraded {
		feed.Mode = domain.FeedWithoutAuthor
	}
	for i := len(r.stored) - 1; i >= 0; i-- {
		entry := domain.AuthoredMessage{Message: *r.stored[i]}
		if name, ok := r.names[entry.AuthorID]; ok && !r.degraded {
			n := name
			entry.Author = &n
		}
		feed.Entries = append(feed.Entries, entry)
	}
	return feed, nil
}

// ---------------------------------------------------------------------------
// Sessions and activity
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	revoked   map[string]time.Time
	revokeErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Time)}
}

func (s *stubSessionStore) Revoke(_ context.Context, id string, until time.Time) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked[id] = until
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := s.revoked[id]
	return ok, nil
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
}

func (r *stubRecorder) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Kind
	}
	return out
}
