package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// ProjectRepo implements the project repository over the shared store.
type ProjectRepo struct {
	store *Store
}

// Create stores a project.
func (r *ProjectRepo) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := *cloneProject(*project)
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	r.store.projects[row.ID] = row

	return cloneProject(row), nil
}

// GetByID returns the user's project or ErrNotFound.
func (r *ProjectRepo) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.projects[projectID]
	if !ok || row.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return cloneProject(row), nil
}

// GetDefault returns the earliest-created active project, the one punch-in
// falls back to when no project is named.
func (r *ProjectRepo) GetDefault(ctx context.Context, userID uuid.UUID) (*domain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var def *domain.Project
	for _, row := range r.store.projects {
		if row.UserID != userID || !row.IsActive {
			continue
		}
		if def == nil || row.CreatedAt.Before(def.CreatedAt) {
			def = cloneProject(row)
		}
	}
	if def == nil {
		return nil, domain.ErrNotFound
	}
	return def, nil
}

// List returns the user's projects, newest first. Archived projects are
// included only when includeInactive is set.
func (r *ProjectRepo) List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Project, 0)
	for _, row := range r.store.projects {
		if row.UserID != userID {
			continue
		}
		if !includeInactive && !row.IsActive {
			continue
		}
		out = append(out, cloneProject(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update applies the non-nil fields and returns the updated row.
func (r *ProjectRepo) Update(ctx context.Context, userID, projectID uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.projects[projectID]
	if !ok || row.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if update.Name != nil {
		row.Name = *update.Name
	}
	if update.Description != nil {
		d := *update.Description
		row.Description = &d
	}
	if update.Color != nil {
		row.Color = *update.Color
	}
	if update.Icon != nil {
		row.Icon = *update.Icon
	}
	if update.IsActive != nil {
		row.IsActive = *update.IsActive
	}
	row.UpdatedAt = time.Now().UTC()
	r.store.projects[projectID] = row

	return cloneProject(row), nil
}

// Delete removes the project. Sessions keep their denormalized snapshot.
func (r *ProjectRepo) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.projects[projectID]
	if !ok || row.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.store.projects, projectID)

	// Mirror the FK's ON DELETE SET NULL.
	for id, sess := range r.store.sessions {
		if sess.ProjectID != nil && *sess.ProjectID == projectID {
			sess.ProjectID = nil
			r.store.sessions[id] = sess
		}
	}
	return nil
}

// DeleteAllByUser removes every project the user owns.
func (r *ProjectRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, row := range r.store.projects {
		if row.UserID == userID {
			delete(r.store.projects, id)
		}
	}
	return nil
}
