package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single audit entry.
func (s *activityService) Process(ctx context.Context, a domain.Activity) error {
	if err := s.repo.Insert(ctx, &a); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	s.log.Debug().
		Str("account_id", a.AccountID).
		Str("kind", string(a.Kind)).
		Msg("activity recorded")

	return nil
}

// Recent returns the latest audit entries. limit defaults to 20 and is capped
// at 100.
func (s *activityService) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.repo.Recent(ctx, limit)
}
