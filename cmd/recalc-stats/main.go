// Command recalc-stats rebuilds the daily_stats aggregates from completed
// sessions for every user. Run it after manual data surgery or when an
// aggregate is suspected to have drifted from the session log.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/dailystat"
	sessionrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/session"
	userrepo "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/worktrack-backend/internal/app"
	"github.com/heartmarshall/worktrack-backend/internal/config"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	sessions := sessionrepo.New(pool)
	stats := dailystat.New(pool)

	rows, err := pool.Query(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		logger.Error("query users", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			logger.Error("scan user id", slog.String("error", err.Error()))
			os.Exit(1)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		logger.Error("iterate users", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var failed int
	for _, userID := range userIDs {
		tz := time.UTC
		if settings, err := users.GetSettings(ctx, userID); err == nil {
			tz = timex.ParseTimezone(settings.Timezone)
		}

		completed, err := sessions.ListCompleted(ctx, userID)
		if err != nil {
			logger.Error("list sessions",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}

		rebuilt := aggregate(userID, completed, tz)
		err = txm.RunInTx(ctx, func(txCtx context.Context) error {
			return stats.ReplaceAll(txCtx, userID, rebuilt)
		})
		if err != nil {
			logger.Error("replace stats",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}

		logger.Info("stats rebuilt",
			slog.String("user_id", userID.String()),
			slog.Int("sessions", len(completed)),
			slog.Int("days", len(rebuilt)),
		)
	}

	if failed > 0 {
		logger.Warn("completed with errors", slog.Int("failed_users", failed))
		os.Exit(1)
	}
	logger.Info("all stats rebuilt", slog.Int("users", len(userIDs)))
}

// aggregate buckets completed sessions by their start date in the user's
// timezone, matching what punch-out maintains incrementally.
func aggregate(userID uuid.UUID, sessions []*domain.WorkSession, tz *time.Location) []domain.DailyStat {
	byDate := make(map[time.Time]*domain.DailyStat)
	for _, s := range sessions {
		date := timex.DateOf(s.StartedAt, tz)
		stat, ok := byDate[date]
		if !ok {
			stat = &domain.DailyStat{UserID: userID, Date: date}
			byDate[date] = stat
		}
		stat.TotalMinutes += s.Duration()
		stat.SessionCount++
	}

	out := make([]domain.DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
