// Package app wires configuration, storage, services and transport
// together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/dailystat"
	projectrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/project"
	sessionrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/session"
	tokenrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/weeklygoal"
	jwtauth "github.com/heartmarshall/worktrack-backend/internal/auth"
	"github.com/heartmarshall/worktrack-backend/internal/config"
	authsvc "github.com/heartmarshall/worktrack-backend/internal/service/auth"
	projectsvc "github.com/heartmarshall/worktrack-backend/internal/service/project"
	statssvc "github.com/heartmarshall/worktrack-backend/internal/service/stats"
	trackersvc "github.com/heartmarshall/worktrack-backend/internal/service/tracker"
	transfersvc "github.com/heartmarshall/worktrack-backend/internal/service/transfer"
	usersvc "github.com/heartmarshall/worktrack-backend/internal/service/user"
	"github.com/heartmarshall/worktrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/worktrack-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to PostgreSQL, builds the service graph and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	projects := projectrepo.New(pool)
	sessions := sessionrepo.New(pool)
	dailyStats := dailystat.New(pool)
	goals := weeklygoal.New(pool)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokens, txManager, jwtManager, cfg.Auth)
	trackerService := trackersvc.NewService(logger, sessions, projects, dailyStats, users, txManager, cfg.Tracker)
	statsService := statssvc.NewService(logger, dailyStats, goals, sessions, users, cfg.Tracker)
	projectService := projectsvc.NewService(logger, projects)
	userService := usersvc.NewService(logger, users)
	transferService := transfersvc.NewService(logger, sessions, projects, dailyStats, goals, users, txManager, cfg.Tracker)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Sessions: rest.NewSessionHandler(trackerService, logger),
		Projects: rest.NewProjectHandler(projectService, logger),
		Stats:    rest.NewStatsHandler(statsService, logger),
		Users:    rest.NewUserHandler(userService, logger),
		Transfer: rest.NewTransferHandler(transferService, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	}, logger, rest.RouterConfig{
		CORS:            cfg.CORS,
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
		TokenValidator:  authService,
	}, limiter)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
