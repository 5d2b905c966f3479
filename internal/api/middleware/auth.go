package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/core/ports"
)

// Context keys set by the auth middleware.
const (
	CtxAccountID      = "account_id"
	CtxSessionID      = "session_id"
	CtxRole           = "role"
	CtxTokenExpiresAt = "token_expires_at"
)

// Auth validates the JWT, rejects revoked sessions and injects claims into
// context.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return authenticate(jwtSecret, sessions, false)
}

// OptionalAuth behaves like Auth when an Authorization header is present and
// lets the request through as anonymous when it is not.
func OptionalAuth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return authenticate(jwtSecret, sessions, true)
}

func authenticate(jwtSecret string, sessions ports.SessionStore, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if optional {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			accountID, _ := claims.GetSubject()
			sessionID, _ := claims["jti"].(string)
			if accountID == "" || sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session identity")
			}

			revoked, err := sessions.IsRevoked(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "session has ended")
			}

			var expiresAt time.Time
			if exp, _ := claims.GetExpirationTime(); exp != nil {
				expiresAt = exp.Time
			}

			c.Set(CtxAccountID, accountID)
			c.Set(CtxSessionID, sessionID)
			c.Set(CtxRole, claims["role"])
			c.Set(CtxTokenExpiresAt, expiresAt)

			return next(c)
		}
	}
}
