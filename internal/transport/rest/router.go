// Package rest exposes the application over HTTP/JSON.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/worktrack-backend/internal/config"
	"github.com/heartmarshall/worktrack-backend/internal/transport/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Sessions *SessionHandler
	Projects *ProjectHandler
	Stats    *StatsHandler
	Users    *UserHandler
	Transfer *TransferHandler
	Health   *HealthHandler
}

// RouterConfig carries the router's cross-cutting settings.
type RouterConfig struct {
	CORS            config.CORSConfig
	RateLimitPerMin int
	TokenValidator  middleware.TokenValidator
}

// NewRouter mounts all routes with the standard middleware chain.
// Health probes bypass auth and rate limiting.
func NewRouter(h Handlers, logger *slog.Logger, cfg RouterConfig, limiter *middleware.RateLimiter) http.Handler {
	api := http.NewServeMux()

	// Auth endpoints carry their own credentials in the body.
	api.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	api.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	api.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	api.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	api.HandleFunc("POST /api/v1/sessions/punch-in", h.Sessions.PunchIn)
	api.HandleFunc("POST /api/v1/sessions/punch-out", h.Sessions.PunchOut)
	api.HandleFunc("POST /api/v1/sessions/cancel", h.Sessions.Cancel)
	api.HandleFunc("GET /api/v1/sessions/active", h.Sessions.Active)
	api.HandleFunc("GET /api/v1/sessions/recent", h.Sessions.Recent)
	api.HandleFunc("GET /api/v1/sessions", h.Sessions.History)
	api.HandleFunc("GET /api/v1/sessions/{id}", h.Sessions.Get)
	api.HandleFunc("PATCH /api/v1/sessions/{id}/notes", h.Sessions.UpdateNotes)

	api.HandleFunc("POST /api/v1/projects", h.Projects.Create)
	api.HandleFunc("GET /api/v1/projects", h.Projects.List)
	api.HandleFunc("GET /api/v1/projects/{id}", h.Projects.Get)
	api.HandleFunc("PATCH /api/v1/projects/{id}", h.Projects.Update)
	api.HandleFunc("DELETE /api/v1/projects/{id}", h.Projects.Delete)

	api.HandleFunc("GET /api/v1/stats/today", h.Stats.Today)
	api.HandleFunc("GET /api/v1/stats/week", h.Stats.Week)
	api.HandleFunc("GET /api/v1/stats/streak", h.Stats.Streak)
	api.HandleFunc("GET /api/v1/stats/range", h.Stats.Range)
	api.HandleFunc("GET /api/v1/dashboard", h.Stats.Dashboard)
	api.HandleFunc("GET /api/v1/goal", h.Stats.GetGoal)
	api.HandleFunc("PUT /api/v1/goal", h.Stats.SetGoal)

	api.HandleFunc("GET /api/v1/users/me", h.Users.Me)
	api.HandleFunc("GET /api/v1/users/me/settings", h.Users.GetSettings)
	api.HandleFunc("PATCH /api/v1/users/me/settings", h.Users.UpdateSettings)

	api.HandleFunc("GET /api/v1/export", h.Transfer.Export)
	api.HandleFunc("POST /api/v1/import", h.Transfer.Import)

	apiChain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimitPerMin),
		middleware.Auth(cfg.TokenValidator),
	)

	root := http.NewServeMux()
	root.Handle("/api/", apiChain(api))

	probes := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
	)
	root.Handle("GET /health", probes(http.HandlerFunc(h.Health.Health)))
	root.Handle("GET /health/live", probes(http.HandlerFunc(h.Health.Live)))
	root.Handle("GET /health/ready", probes(http.HandlerFunc(h.Health.Ready)))

	return root
}
