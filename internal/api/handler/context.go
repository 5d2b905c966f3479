package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/api/middleware"
	"github.com/thehex/board/internal/core/domain"
)

// ctxViewer builds the request viewer from the claims injected by the auth
// middleware. Without claims the viewer is anonymous.
func ctxViewer(c echo.Context) domain.Viewer {
	accountID, _ := c.Get(middleware.CtxAccountID).(string)
	sessionID, _ := c.Get(middleware.CtxSessionID).(string)
	return domain.Viewer{AccountID: accountID, SessionID: sessionID}
}

// requireViewer is ctxViewer for routes behind Auth: an anonymous viewer
// there means the middleware did not run, so fail fast with 401.
func requireViewer(c echo.Context) (domain.Viewer, error) {
	v := ctxViewer(c)
	if v.Anonymous() {
		return v, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return v, nil
}

func ctxTokenExpiry(c echo.Context) time.Time {
	exp, _ := c.Get(middleware.CtxTokenExpiresAt).(time.Time)
	return exp
}
