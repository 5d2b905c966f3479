package ports

import (
	"context"

	"github.com/thehex/board/internal/core/domain"
)

// AccountRepository is the persistence side of the identity collaborator.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Update applies fields to the account and returns the stored result.
	Update(ctx context.Context, id string, fields domain.AccountUpdate) (*domain.Account, error)
}
