package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thehex/board/internal/core/domain"
)

// boardStore is an in-memory stand-in for the Mongo and Redis backends.
type boardStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	messages []domain.Message
	revoked  map[string]time.Time
	activity []domain.Activity
	seq      int
}

func newBoardStore() *boardStore {
	return &boardStore{
		accounts: map[string]*domain.Account{},
		revoked:  map[string]time.Time{},
	}
}

func (s *boardStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// --- accounts ---

type memAccounts struct{ s *boardStore }

func (r memAccounts) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return nil, domain.ErrAccountExists
		}
	}
	cp := *a
	cp.ID = r.s.nextID("acct")
	r.s.accounts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAccounts) Update(_ context.Context, id string, fields domain.AccountUpdate) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if fields.GrantMembership {
		a.IsMember = true
	}
	cp := *a
	return &cp, nil
}

// --- messages ---

type memMessages struct{ s *boardStore }

func (r memMessages) Insert(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ID = r.s.nextID("msg")
	r.s.messages = append(r.s.messages, cp)
	return &cp, nil
}

func (r memMessages) ListWithAuthors(_ context.Context) (*domain.MessageFeed, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entries := make([]domain.AuthoredMessage, 0, len(r.s.messages))
	for i := len(r.s.messages) - 1; i >= 0; i-- {
		m := r.s.messages[i]
		e := domain.AuthoredMessage{Message: m}
		if a, ok := r.s.accounts[m.AuthorID]; ok {
			e.Author = &domain.AuthorName{FirstName: a.FirstName, LastName: a.LastName}
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return &domain.MessageFeed{Mode: domain.FeedWithAuthor, Entries: entries}, nil
}

// --- sessions ---

type memSessions struct{ s *boardStore }

func (r memSessions) Revoke(_ context.Context, id string, until time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.revoked[id] = until
	return nil
}

func (r memSessions) IsRevoked(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.revoked[id]
	return ok, nil
}

// --- activity ---

type memActivity struct{ s *boardStore }

func (r memActivity) Insert(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activity = append(r.s.activity, *a)
	return nil
}

func (r memActivity) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Activity, 0, limit)
	for i := len(r.s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.activity[i])
	}
	return out, nil
}

// syncRecorder persists activity inline so tests can read it back at once.
type syncRecorder struct {
	repo memActivity
}

func (r syncRecorder) Record(a domain.Activity) {
	_ = r.repo.Insert(context.Background(), &a)
}
