// Package project implements the Project repository using PostgreSQL.
package project

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

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const projectColumns = `id, user_id, name, description, color, icon, is_active, created_at, updated_at`

const createSQL = `
INSERT INTO projects (id, user_id, name, description, color, icon, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + projectColumns

const getByIDSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1 AND user_id = $2`

const listActiveSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1 AND is_active = true
ORDER BY created_at DESC`

const listAllSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY created_at DESC`

const getDefaultSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1 AND is_active = true
ORDER BY created_at ASC
LIMIT 1`

const deleteSQL = `
DELETE FROM projects WHERE id = $1 AND user_id = $2`

const deleteAllByUserSQL = `
DELETE FROM projects WHERE user_id = $1`

// Create inserts a new project and returns the persisted row.
func (r *Repo) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	createdAt := project.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	row := querier.QueryRow(ctx, createSQL,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.Color,
		project.Icon,
		project.IsActive,
		createdAt.UTC().Truncate(time.Microsecond),
	)

	created, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", project.ID)
	}

	return created, nil
}

// GetByID returns a project by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, projectID, userID)

	project, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", projectID)
	}

	return project, nil
}

// List returns the user's projects, newest first. includeInactive controls
// whether soft-deleted projects appear.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := listActiveSQL
	if includeInactive {
		query = listAllSQL
	}

	rows, err := querier.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// GetDefault returns the earliest-created active project, used when a
// punch-in names no project. Returns domain.ErrNotFound if the user has none.
func (r *Repo) GetDefault(ctx context.Context, userID uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getDefaultSQL, userID)

	project, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", uuid.Nil)
	}

	return project, nil
}

// Update applies a partial update; nil fields are untouched.
// Returns domain.ErrNotFound when the project does not exist or belongs to
// another user.
func (r *Repo) Update(ctx context.Context, userID, projectID uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Update("projects").
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": projectID, "user_id": userID}).
		Suffix("RETURNING " + projectColumns).
		PlaceholderFormat(sq.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Color != nil {
		builder = builder.Set("color", *update.Color)
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project update: %w", err)
	}

	row := querier.QueryRow(ctx, query, args...)

	updated, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", projectID)
	}

	return updated, nil
}

// Delete permanently removes a project row. Sessions keep their denormalized
// snapshot; the FK sets their project_id to NULL.
func (r *Repo) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, projectID, userID)
	if err != nil {
		return postgres.MapError(err, "project", projectID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByUser removes every project for a user. Used by import.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "project", uuid.Nil)
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Color,
		&p.Icon,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]*domain.Project, error) {
	projects := []*domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&p.Color,
			&p.Icon,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}
