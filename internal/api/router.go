package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/thehex/board/docs"
	"github.com/thehex/board/internal/api/handler"
	"github.com/thehex/board/internal/api/middleware"
	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Identity   ports.IdentityService
	Messages   ports.MessageService
	Membership ports.MembershipService
	Activity   ports.ActivityService
	Sessions   ports.SessionStore

	HealthChecks map[string]handler.DependencyCheck

	JWTSecret string
	Log       zerolog.Logger

	// Registry receives the HTTP metrics; the default registry when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Identity)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	membershipHandler := handler.NewMembershipHandler(deps.Membership)
	activityHandler := handler.NewActivityHandler(deps.Activity)

	requireAuth := middleware.Auth(deps.JWTSecret, deps.Sessions)
	optionalAuth := middleware.OptionalAuth(deps.JWTSecret, deps.Sessions)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Board routes ---
	v1.GET("/messages", messageHandler.List, optionalAuth)
	v1.POST("/messages", messageHandler.Create, requireAuth)
	v1.POST("/membership", membershipHandler.Join, requireAuth)

	// --- Admin routes ---
	admin := v1.Group("/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/activity", activityHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "board",
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
