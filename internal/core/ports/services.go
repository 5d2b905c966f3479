package ports

import (
	"context"
	"time"

	"github.com/thehex/board/internal/core/domain"
)

// SignupInput carries the profile fields submitted at registration.
type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// IdentityService is the identity/session collaborator consumed by the
// transport layer.
type IdentityService interface {
	Register(ctx context.Context, in SignupInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Logout ends the viewer's session; the token stays rejected until expiresAt.
	Logout(ctx context.Context, viewer domain.Viewer, expiresAt time.Time) error
	// CurrentAccount resolves the viewer to a fresh account record, or
	// ErrNoSession for an anonymous viewer.
	CurrentAccount(ctx context.Context, viewer domain.Viewer) (*domain.Account, error)
}

// FeedResult is the projected message listing for one viewer.
type FeedResult struct {
	Mode           domain.FeedMode
	ViewerIsMember bool
	Messages       []domain.MessageView
}

// MessageService covers posting to and reading the board.
type MessageService interface {
	Post(ctx context.Context, viewer domain.Viewer, title, content string) (*domain.Message, error)
	List(ctx context.Context, viewer domain.Viewer) (*FeedResult, error)
}

// MembershipService elevates accounts to member status.
type MembershipService interface {
	Elevate(ctx context.Context, viewer domain.Viewer, passcode string) (*domain.Account, error)
}
