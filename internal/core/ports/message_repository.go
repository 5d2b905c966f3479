package ports

import (
	"context"

	"github.com/thehex/board/internal/core/domain"
)

// MessageRepository defines persistence operations for board messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// ListWithAuthors returns every message, newest first, joined with the
	// author's name. When the join is unavailable the repository falls back to
	// plain messages and tags the feed FeedWithoutAuthor; an error means both
	// queries failed.
	ListWithAuthors(ctx context.Context) (*domain.MessageFeed, error)
}
