//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/dailystat"
	projectrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/project"
	sessionrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/testhelper"
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

	"golang.org/x/crypto/bcrypt"
)

const jwtSecret = "test-secret-at-least-32-chars-long!!"

// testServer bundles everything a flow test needs: the HTTP endpoint,
// a DB pool for direct seeding/verification, and the JWT manager for
// minting tokens without going through /auth.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *jwtauth.JWTManager
}

// testLogWriter routes application logs into the test output so they show
// up next to the failing assertion when a test goes wrong.
type testLogWriter struct {
	t *testing.T
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer wires the full stack (repos, services, router) over the
// shared test database and serves it from an httptest server.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	projects := projectrepo.New(pool)
	sessions := sessionrepo.New(pool)
	stats := dailystat.New(pool)
	goals := weeklygoal.New(pool)

	jwtManager := jwtauth.NewJWTManager(jwtSecret, "worktrack-test", 15*time.Minute)

	authCfg := config.AuthConfig{
		JWTSecret:        jwtSecret,
		JWTIssuer:        "worktrack-test",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
	trackerCfg := config.TrackerConfig{
		MinSessionMinutes:    1,
		DefaultGoalHours:     40,
		RecentSessionsLimit:  10,
		DashboardRecentLimit: 3,
		StreakLookbackDays:   365,
		HistoryMaxLimit:      200,
	}

	authService := authsvc.NewService(logger, users, tokens, txm, jwtManager, authCfg)
	trackerService := trackersvc.NewService(logger, sessions, projects, stats, users, txm, trackerCfg)
	statsService := statssvc.NewService(logger, stats, goals, sessions, users, trackerCfg)
	projectService := projectsvc.NewService(logger, projects)
	userService := usersvc.NewService(logger, users)
	transferService := transfersvc.NewService(logger, sessions, projects, stats, goals, users, txm, trackerCfg)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(
		rest.Handlers{
			Auth:     rest.NewAuthHandler(authService, logger),
			Sessions: rest.NewSessionHandler(trackerService, logger),
			Projects: rest.NewProjectHandler(projectService, logger),
			Stats:    rest.NewStatsHandler(statsService, logger),
			Users:    rest.NewUserHandler(userService, logger),
			Transfer: rest.NewTransferHandler(transferService, logger),
			Health:   rest.NewHealthHandler(pool, "e2e"),
		},
		logger,
		rest.RouterConfig{
			CORS:            config.CORSConfig{AllowedOrigins: "*"},
			RateLimitPerMin: 100000,
			TokenValidator:  authService,
		},
		limiter,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtManager,
	}
}

// ---------------------------------------------------------------------------
// restRequest sends a JSON request and decodes the JSON response body.
// An empty token skips the Authorization header; a nil body sends none.
// ---------------------------------------------------------------------------

func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	// 204s and the auth middleware's plain-text 401 carry no JSON body.
	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, result
}

// ---------------------------------------------------------------------------
// registerTestUser creates a fresh user through the public API and returns
// an access token, a refresh token and the user's ID.
// ---------------------------------------------------------------------------

func registerTestUser(t *testing.T, ts *testServer) (access string, refresh string, userID uuid.UUID) {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.NewString()[:8])
	status, body := restRequest(t, ts, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"name":     "E2E User",
		"password": "correct horse battery",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d, body %v", status, body)
	}

	access, _ = body["accessToken"].(string)
	refresh, _ = body["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("register: missing tokens in %v", body)
	}

	user, _ := body["user"].(map[string]any)
	id, err := uuid.Parse(user["id"].(string))
	if err != nil {
		t.Fatalf("register: bad user id: %v", err)
	}

	return access, refresh, id
}

// seedCompletedSession inserts a completed session directly, bypassing the
// punch-in/punch-out flow, and keeps the daily aggregate in step the same
// way punch-out would.
func seedCompletedSession(t *testing.T, ts *testServer, userID uuid.UUID, startedAt time.Time, minutes int) uuid.UUID {
	t.Helper()

	id := testhelper.SeedCompletedSession(t, ts.Pool, userID, startedAt, minutes)

	date := time.Date(startedAt.Year(), startedAt.Month(), startedAt.Day(), 0, 0, 0, 0, time.UTC)
	_, err := ts.Pool.Exec(context.Background(),
		`INSERT INTO daily_stats (user_id, date, total_minutes, session_count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id, date)
		 DO UPDATE SET total_minutes = daily_stats.total_minutes + $3,
		               session_count = daily_stats.session_count + 1`,
		userID, date, minutes,
	)
	if err != nil {
		t.Fatalf("seed daily stat: %v", err)
	}

	return id
}
