// Package weeklygoal implements the WeeklyGoal repository using PostgreSQL.
package weeklygoal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// Repo provides weekly goal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new weekly goal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, week_start_date, target_hours, updated_at
FROM weekly_goals
WHERE user_id = $1 AND week_start_date = $2`

const upsertSQL = `
INSERT INTO weekly_goals (user_id, week_start_date, target_hours, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, week_start_date)
DO UPDATE SET target_hours = $3, updated_at = now()
RETURNING user_id, week_start_date, target_hours, updated_at`

const deleteAllByUserSQL = `
DELETE FROM weekly_goals WHERE user_id = $1`

// Get returns the goal for a week.
// Returns domain.ErrNotFound if none was set; callers apply the default.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, userID, weekStart)

	goal, err := scanGoal(row)
	if err != nil {
		return nil, postgres.MapError(err, "weekly_goal", userID)
	}

	return goal, nil
}

// Upsert creates or replaces the goal for a week.
func (r *Repo) Upsert(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertSQL, goal.UserID, goal.WeekStart, goal.TargetHours)

	saved, err := scanGoal(row)
	if err != nil {
		return nil, postgres.MapError(err, "weekly_goal", goal.UserID)
	}

	return saved, nil
}

// DeleteAllByUser removes every goal row for a user. Used by import.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "weekly_goal", userID)
	}
	return nil
}

func scanGoal(row pgx.Row) (*domain.WeeklyGoal, error) {
	var g domain.WeeklyGoal
	if err := row.Scan(&g.UserID, &g.WeekStart, &g.TargetHours, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.WeekStart = time.Date(g.WeekStart.Year(), g.WeekStart.Month(), g.WeekStart.Day(), 0, 0, 0, 0, time.UTC)
	return &g, nil
}
