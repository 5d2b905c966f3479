package ports

import (
	"context"

	"github.com/thehex/board/internal/core/domain"
)

// ActivityRecorder accepts audit entries without blocking the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}

// ActivityRepository persists and reads the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}

// ActivityService processes dequeued audit entries and serves reads.
type ActivityService interface {
	Process(ctx context.Context, activity domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}
