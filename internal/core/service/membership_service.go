package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/policy"
	"github.com/thehex/board/internal/core/ports"
)

// MembershipService performs the one-way non-member → member transition.
type MembershipService struct {
	accounts ports.AccountRepository
	gate     *policy.PasscodeGate
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewMembershipService(
	accounts ports.AccountRepository,
	gate *policy.PasscodeGate,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *MembershipService {
	return &MembershipService{
		accounts: accounts,
		gate:     gate,
		activity: recorderOrDiscard(activity),
		log:      log,
	}
}

// Elevate grants membership to the viewer's account when passcode matches the
// shared secret. An account that is already a member gets ErrAlreadyMember
// and the passcode is not evaluated.
func (s *MembershipService) Elevate(ctx context.Context, viewer domain.Viewer, passcode string) (*domain.Account, error) {
	if viewer.Anonymous() {
		return nil, domain.ErrNoSession
	}

	account, err := s.accounts.FindByID(ctx, viewer.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("elevate: %w", err)
	}

	if account.IsMember {
		return nil, domain.ErrAlreadyMember
	}

	if !s.gate.Check(passcode) {
		s.activity.Record(domain.Activity{AccountID: account.ID, Kind: domain.ActivityPasscodeRejected, At: time.Now().UTC()})
		return nil, domain.ErrInvalidPasscode
	}

	updated, err := s.accounts.Update(ctx, account.ID, domain.AccountUpdate{GrantMembership: true})
	if err != nil {
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("failed to persist membership")
		return nil, fmt.Errorf("elevate: %w", err)
	}

	s.activity.Record(domain.Activity{AccountID: account.ID, Kind: domain.ActivityMembershipGranted, At: time.Now().UTC()})
	s.log.Info().Str("account_id", account.ID).Msg("membership granted")

	return updated, nil
}
