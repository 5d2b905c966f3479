package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

// AuthService implements registration, login and session handling.
type AuthService struct {
	repo      ports.AccountRepository
	sessions  ports.SessionStore
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(
	repo ports.AccountRepository,
	sessions ports.SessionStore,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		activity:  recorderOrDiscard(activity),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the signup form and creates a non-member account. All
// validation happens before the repository is touched.
func (s *AuthService) Register(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)

	if firstName == "" || lastName == "" || email == "" {
		return nil, domain.ErrEmptyProfile
	}
	if utf8.RuneCountInString(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.Activity{AccountID: created.ID, Kind: domain.ActivitySignup, At: now})
	return created, nil
}

// Login checks credentials and issues a signed session token. Unknown email
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(account)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.Activity{AccountID: account.ID, Kind: domain.ActivityLogin, At: s.now()})
	return session, nil
}

// Logout revokes the viewer's session until its token would have expired.
func (s *AuthService) Logout(ctx context.Context, viewer domain.Viewer, expiresAt time.Time) error {
	if viewer.Anonymous() || viewer.SessionID == "" {
		return domain.ErrNoSession
	}
	if err := s.sessions.Revoke(ctx, viewer.SessionID, expiresAt); err != nil {
		return err
	}

	s.activity.Record(domain.Activity{AccountID: viewer.AccountID, Kind: domain.ActivityLogout, At: s.now()})
	return nil
}

// CurrentAccount loads the viewer's account. The record is always read from
// the repository so membership changes are seen immediately.
func (s *AuthService) CurrentAccount(ctx context.Context, viewer domain.Viewer) (*domain.Account, error) {
	if viewer.Anonymous() {
		return nil, domain.ErrNoSession
	}

	account, err := s.repo.FindByID(ctx, viewer.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrNoSession
		}
		return nil, err
	}
	return account, nil
}

func (s *AuthService) issueSession(account *domain.Account) (*domain.Session, error) {
	now := s.now()
	sessionID := uuid.NewString()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub":  account.ID,
		"jti":  sessionID,
		"role": account.Role(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.Session{
		ID:        sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
