package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/policy"
	"github.com/thehex/board/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	accounts ports.AccountRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewMessageService(
	messages ports.MessageRepository,
	accounts ports.AccountRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		accounts: accounts,
		activity: recorderOrDiscard(activity),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Post stores a new message authored by the viewer. Blank (or whitespace-only)
// title or content is rejected before the store is called.
func (s *MessageService) Post(ctx context.Context, viewer domain.Viewer, title, content string) (*domain.Message, error) {
	if viewer.Anonymous() {
		return nil, domain.ErrNoSession
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	stored, err := s.messages.Insert(ctx, &domain.Message{
		Title:     title,
		Content:   content,
		AuthorID:  viewer.AccountID,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", viewer.AccountID).Msg("failed to store message")
		return nil, err
	}

	s.activity.Record(domain.Activity{
		AccountID: viewer.AccountID,
		Kind:      domain.ActivityMessagePosted,
		Subject:   stored.ID,
		At:        stored.CreatedAt,
	})
	s.logger.Info().Str("message_id", stored.ID).Str("account_id", viewer.AccountID).Msg("message posted")

	return stored, nil
}

// List returns the whole feed, newest first, projected for the viewer.
func (s *MessageService) List(ctx context.Context, viewer domain.Viewer) (*ports.FeedResult, error) {
	isMember := s.viewerIsMember(ctx, viewer)

	feed, err := s.messages.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	if feed.Mode == domain.FeedWithoutAuthor {
		s.logger.Warn().Int("count", len(feed.Entries)).Msg("author join unavailable, serving messages without authors")
	}

	return &ports.FeedResult{
		Mode:           feed.Mode,
		ViewerIsMember: isMember,
		Messages:       policy.ProjectFeed(*feed, isMember),
	}, nil
}

// viewerIsMember reads membership from the account store. Any failure to
// resolve the account yields the non-member view.
func (s *MessageService) viewerIsMember(ctx context.Context, viewer domain.Viewer) bool {
	if viewer.Anonymous() {
		return false
	}

	account, err := s.accounts.FindByID(ctx, viewer.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn().Err(err).Str("account_id", viewer.AccountID).Msg("membership lookup failed, using non-member view")
		}
		return false
	}
	return account.IsMember
}
