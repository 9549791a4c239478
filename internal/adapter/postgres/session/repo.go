// Package session implements the WorkSession repository using PostgreSQL.
// A partial unique index (one row per user where status = 'active') is the
// authoritative guard for the single-active-session invariant; concurrent
// punch-ins race on it and the loser surfaces domain.ErrAlreadyExists.
package session

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// Repo provides work session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, user_id, project_id, project_name, project_color, project_icon,
started_at, ended_at, duration_minutes, notes, status, created_at`

const createSQL = `
INSERT INTO work_sessions (id, user_id, project_id, project_name, project_color, project_icon,
started_at, ended_at, duration_minutes, notes, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + sessionColumns

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM work_sessions
WHERE id = $1 AND user_id = $2`

const getActiveSQL = `
SELECT ` + sessionColumns + `
FROM work_sessions
WHERE user_id = $1 AND status = 'active'`

const completeSQL = `
UPDATE work_sessions
SET status = 'completed', ended_at = $3, duration_minutes = $4
WHERE id = $1 AND user_id = $2 AND status = 'active'
RETURNING ` + sessionColumns

const cancelSQL = `
UPDATE work_sessions
SET status = 'cancelled'
WHERE id = $1 AND user_id = $2 AND status = 'active'
RETURNING ` + sessionColumns

const deleteSQL = `
DELETE FROM work_sessions WHERE id = $1 AND user_id = $2`

const deleteAllByUserSQL = `
DELETE FROM work_sessions WHERE user_id = $1`

const getRecentSQL = `
SELECT ` + sessionColumns + `
FROM work_sessions
WHERE user_id = $1 AND status = 'completed'
ORDER BY started_at DESC
LIMIT $2`

const listCompletedSQL = `
SELECT ` + sessionColumns + `
FROM work_sessions
WHERE user_id = $1 AND status = 'completed'
ORDER BY started_at ASC`

const updateNotesSQL = `
UPDATE work_sessions
SET notes = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + sessionColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a session by primary key filtered by user_id.
// Returns domain.ErrNotFound if the session does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, sessionID, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return session, nil
}

// GetActive returns the current active session for a user.
// Returns domain.ErrNotFound if no active session exists.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getActiveSQL, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", uuid.Nil)
	}

	return session, nil
}

// GetRecent returns the most recently started completed sessions.
func (r *Repo) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getRecentSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListCompleted returns every completed session for a user, oldest first.
// Used by export and by the daily-stat rebuild.
func (r *Repo) ListCompleted(ctx context.Context, userID uuid.UUID) ([]*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCompletedSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetHistory returns completed sessions matching the filter plus the total
// match count. The query is assembled dynamically from the optional filters.
func (r *Repo) GetHistory(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]*domain.WorkSession, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{
		sq.Eq{"user_id": userID},
		sq.Eq{"status": string(domain.SessionStatusCompleted)},
	}
	if filter.From != nil {
		where = append(where, sq.GtOrEq{"started_at": filter.From.UTC()})
	}
	if filter.To != nil {
		where = append(where, sq.Lt{"started_at": filter.To.UTC()})
	}
	if filter.ProjectID != nil {
		where = append(where, sq.Eq{"project_id": *filter.ProjectID})
	}

	countSQL, countArgs, err := sq.Select("count(*)").
		From("work_sessions").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build history count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	query := sq.Select(sessionColumns).
		From("work_sessions").
		Where(where).
		OrderBy("started_at DESC").
		PlaceholderFormat(sq.Dollar)
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	querySQL, queryArgs, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build history query: %w", err)
	}

	rows, err := querier.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("get history: %w", err)
	}

	return sessions, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a session with all its fields and returns the persisted row.
// Inserting a second active session for the same user violates the partial
// unique index and returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	startedAt := session.StartedAt.UTC().Truncate(time.Microsecond)

	var endedAt *time.Time
	if session.EndedAt != nil {
		t := session.EndedAt.UTC().Truncate(time.Microsecond)
		endedAt = &t
	}

	row := querier.QueryRow(ctx, createSQL,
		session.ID,
		session.UserID,
		session.ProjectID,
		session.Project.Name,
		session.Project.Color,
		session.Project.Icon,
		startedAt,
		endedAt,
		session.DurationMinutes,
		session.Notes,
		string(session.Status),
		now,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", session.ID)
	}

	return created, nil
}

// Complete marks an active session completed with its end time and duration.
// Returns domain.ErrNotFound if the session does not exist, belongs to another
// user, or is not active.
func (r *Repo) Complete(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time, durationMinutes int) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, completeSQL,
		sessionID, userID, endedAt.UTC().Truncate(time.Microsecond), durationMinutes)

	completed, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return completed, nil
}

// Cancel marks an active session cancelled. No duration is recorded.
// Returns domain.ErrNotFound if the session does not exist, belongs to another
// user, or is not active.
func (r *Repo) Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, cancelSQL, sessionID, userID)

	cancelled, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return cancelled, nil
}

// Delete removes a session row entirely. Used for the sub-minimum
// punch-out discard, which never persists a terminal row.
func (r *Repo) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, sessionID, userID)
	if err != nil {
		return postgres.MapError(err, "session", sessionID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByUser removes every session for a user. Used by import.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "session", uuid.Nil)
	}
	return nil
}

// UpdateNotes replaces the notes of a session.
func (r *Repo) UpdateNotes(ctx context.Context, userID, sessionID uuid.UUID, notes string) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateNotesSQL, sessionID, userID, notes)

	updated, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return updated, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSession(row pgx.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var status string

	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ProjectID,
		&s.Project.Name,
		&s.Project.Color,
		&s.Project.Icon,
		&s.StartedAt,
		&s.EndedAt,
		&s.DurationMinutes,
		&s.Notes,
		&status,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}

	s.Status = domain.SessionStatus(status)
	return &s, nil
}

func scanSessions(rows pgx.Rows) ([]*domain.WorkSession, error) {
	sessions := []*domain.WorkSession{}
	for rows.Next() {
		var s domain.WorkSession
		var status string

		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.ProjectID,
			&s.Project.Name,
			&s.Project.Color,
			&s.Project.Icon,
			&s.StartedAt,
			&s.EndedAt,
			&s.DurationMinutes,
			&s.Notes,
			&status,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}

		s.Status = domain.SessionStatus(status)
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
