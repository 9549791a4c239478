// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worktrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, name, password_hash, created_at, updated_at`

const createSQL = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + userColumns

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const createSettingsSQL = `
INSERT INTO user_settings (user_id, timezone, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO NOTHING`

const getSettingsSQL = `
SELECT user_id, timezone, updated_at
FROM user_settings
WHERE user_id = $1`

const updateTimezoneSQL = `
UPDATE user_settings
SET timezone = $2, updated_at = now()
WHERE user_id = $1
RETURNING user_id, timezone, updated_at`

// Create inserts a new user. A duplicate email maps to
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, createSQL,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		createdAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", user.ID)
	}

	return created, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return user, nil
}

// GetByEmail returns a user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByEmailSQL, email)

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return user, nil
}

// CreateSettings writes the initial settings row for a user.
// Idempotent; an existing row is left alone.
func (r *Repo) CreateSettings(ctx context.Context, settings *domain.UserSettings) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, createSettingsSQL, settings.UserID, settings.Timezone); err != nil {
		return postgres.MapError(err, "user_settings", settings.UserID)
	}
	return nil
}

// GetSettings returns the settings row for a user.
func (r *Repo) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, getSettingsSQL, userID).Scan(&s.UserID, &s.Timezone, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return &s, nil
}

// UpdateTimezone sets the user's IANA timezone.
func (r *Repo) UpdateTimezone(ctx context.Context, userID uuid.UUID, timezone string) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, updateTimezoneSQL, userID, timezone).Scan(&s.UserID, &s.Timezone, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return &s, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
