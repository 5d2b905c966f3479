package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/api/middleware"
	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

type stubIdentityService struct {
	registerFn func(ctx context.Context, in ports.SignupInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	logoutFn   func(ctx context.Context, viewer domain.Viewer, expiresAt time.Time) error
	currentFn  func(ctx context.Context, viewer domain.Viewer) (*domain.Account, error)
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubIdentityService) Logout(ctx context.Context, viewer domain.Viewer, expiresAt time.Time) error {
	return s.logoutFn(ctx, viewer, expiresAt)
}

func (s *stubIdentityService) CurrentAccount(ctx context.Context, viewer domain.Viewer) (*domain.Account, error) {
	return s.currentFn(ctx, viewer)
}

type stubMessageService struct {
	postFn func(ctx context.Context, viewer domain.Viewer, title, content string) (*domain.Message, error)
	listFn func(ctx context.Context, viewer domain.Viewer) (*ports.FeedResult, error)
}

func (s *stubMessageService) Post(ctx context.Context, viewer domain.Viewer, title, content string) (*domain.Message, error) {
	return s.postFn(ctx, viewer, title, content)
}

func (s *stubMessageService) List(ctx context.Context, viewer domain.Viewer) (*ports.FeedResult, error) {
	return s.listFn(ctx, viewer)
}

type stubMembershipService struct {
	elevateFn func(ctx context.Context, viewer domain.Viewer, passcode string) (*domain.Account, error)
}

func (s *stubMembershipService) Elevate(ctx context.Context, viewer domain.Viewer, passcode string) (*domain.Account, error) {
	return s.elevateFn(ctx, viewer, passcode)
}

type stubActivityService struct {
	recentFn func(ctx context.Context, limit int) ([]domain.Activity, error)
}

func (s *stubActivityService) Process(context.Context, domain.Activity) error { return nil }

func (s *stubActivityService) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	return s.recentFn(ctx, limit)
}

// newJSONContext builds an echo context for a JSON request with the
// validator installed, as the router does.
func newJSONContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asViewer sets the claims the Auth middleware would have injected.
func asViewer(c echo.Context, accountID string) {
	c.Set(middleware.CtxAccountID, accountID)
	c.Set(middleware.CtxSessionID, "sess-"+accountID)
	c.Set(middleware.CtxRole, domain.RoleUser)
	c.Set(middleware.CtxTokenExpiresAt, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
