// Package dailystat implements the DailyStat repository using PostgreSQL.
// The per-day row is a materialized aggregate: AddSession performs the
// additive upsert inside the punch-out transaction, and ReplaceAll lets the
// rebuild tooling restore the rows from the session history.
package dailystat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// Repo provides daily aggregate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new daily stat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const addSessionSQL = `
INSERT INTO daily_stats (user_id, date, total_minutes, session_count)
VALUES ($1, $2, $3, 1)
ON CONFLICT (user_id, date)
DO UPDATE SET
  total_minutes = daily_stats.total_minutes + $3,
  session_count = daily_stats.session_count + 1`

const getSQL = `
SELECT user_id, date, total_minutes, session_count
FROM daily_stats
WHERE user_id = $1 AND date = $2`

const sumRangeSQL = `
SELECT COALESCE(SUM(total_minutes), 0)
FROM daily_stats
WHERE user_id = $1 AND date >= $2 AND date < $3`

const listRangeSQL = `
SELECT user_id, date, total_minutes, session_count
FROM daily_stats
WHERE user_id = $1 AND date >= $2 AND date <= $3
ORDER BY date ASC`

const listRecentSQL = `
SELECT user_id, date, total_minutes, session_count
FROM daily_stats
WHERE user_id = $1 AND total_minutes > 0 AND date >= $2
ORDER BY date DESC`

const deleteAllByUserSQL = `
DELETE FROM daily_stats WHERE user_id = $1`

// AddSession applies a completed session to the day bucket: total minutes
// grow by the session duration and the count by one. Must run inside the
// punch-out transaction so the session row and the aggregate move together.
func (r *Repo) AddSession(ctx context.Context, userID uuid.UUID, date time.Time, minutes int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, addSessionSQL, userID, date, minutes); err != nil {
		return postgres.MapError(err, "daily_stat", userID)
	}
	return nil
}

// Get returns the aggregate for one day.
// Returns domain.ErrNotFound if no work was logged that day.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStat, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, userID, date)

	stat, err := scanStat(row)
	if err != nil {
		return nil, postgres.MapError(err, "daily_stat", userID)
	}

	return stat, nil
}

// SumRange returns total minutes over [from, to) by date.
func (r *Repo) SumRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, sumRangeSQL, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum daily stats: %w", err)
	}
	return total, nil
}

// ListRange returns per-day rows over [from, to], oldest first.
func (r *Repo) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyStat, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRangeSQL, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// ListRecent returns the nonzero day buckets from cutoff onward,
// most recent first. Input for the streak walk.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]domain.DailyStat, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRecentSQL, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list recent daily stats: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// ReplaceAll deletes the user's aggregate rows and writes the given set.
// Used by import and the rebuild command; callers run it inside a transaction.
func (r *Repo) ReplaceAll(ctx context.Context, userID uuid.UUID, stats []domain.DailyStat) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "daily_stat", userID)
	}

	for _, s := range stats {
		if _, err := querier.Exec(ctx,
			`INSERT INTO daily_stats (user_id, date, total_minutes, session_count)
			 VALUES ($1, $2, $3, $4)`,
			s.UserID, s.Date, s.TotalMinutes, s.SessionCount,
		); err != nil {
			return postgres.MapError(err, "daily_stat", s.UserID)
		}
	}

	return nil
}

func scanStat(row pgx.Row) (*domain.DailyStat, error) {
	var s domain.DailyStat
	if err := row.Scan(&s.UserID, &s.Date, &s.TotalMinutes, &s.SessionCount); err != nil {
		return nil, err
	}
	s.Date = normalizeDate(s.Date)
	return &s, nil
}

func scanStats(rows pgx.Rows) ([]domain.DailyStat, error) {
	stats := []domain.DailyStat{}
	for rows.Next() {
		var s domain.DailyStat
		if err := rows.Scan(&s.UserID, &s.Date, &s.TotalMinutes, &s.SessionCount); err != nil {
			return nil, err
		}
		s.Date = normalizeDate(s.Date)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// normalizeDate pins a scanned DATE column to midnight UTC so date
// arithmetic in the services compares equal values.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
