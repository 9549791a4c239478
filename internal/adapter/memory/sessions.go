package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// SessionRepo implements the work session repository over the shared store.
// It enforces the same single-active-session rule the database's partial
// unique index does.
type SessionRepo struct {
	store *Store
}

// Create stores a session. A second active session for the same user is
// rejected with ErrAlreadyExists.
func (r *SessionRepo) Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if session.Status == domain.SessionStatusActive {
		for _, existing := range r.store.sessions {
			if existing.UserID == session.UserID && existing.Status == domain.SessionStatusActive {
				return nil, domain.ErrAlreadyExists
			}
		}
	}

	row := *cloneSession(*session)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	r.store.sessions[row.ID] = row

	return cloneSession(row), nil
}

// GetByID returns the user's session or ErrNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.sessions[sessionID]
	if !ok || row.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return cloneSession(row), nil
}

// GetActive returns the user's running session or ErrNotFound.
func (r *SessionRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.sessions {
		if row.UserID == userID && row.Status == domain.SessionStatusActive {
			return cloneSession(row), nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetRecent returns the newest completed sessions, newest first.
func (r *SessionRepo) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.completed(userID)
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListCompleted returns all completed sessions, oldest first.
func (r *SessionRepo) ListCompleted(ctx context.Context, userID uuid.UUID) ([]*domain.WorkSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.completed(userID)
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

// GetHistory returns completed sessions matching the filter plus the total
// match count. From is inclusive, To exclusive, both against the start time.
func (r *SessionRepo) GetHistory(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]*domain.WorkSession, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*domain.WorkSession, 0)
	for _, row := range r.completed(userID) {
		if filter.From != nil && row.StartedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !row.StartedAt.Before(*filter.To) {
			continue
		}
		if filter.ProjectID != nil && (row.ProjectID == nil || *row.ProjectID != *filter.ProjectID) {
			continue
		}
		matches = append(matches, row)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].StartedAt.After(matches[j].StartedAt) })

	total := len(matches)
	if filter.Offset > 0 {
		if filter.Offset >= len(matches) {
			matches = nil
		} else {
			matches = matches[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matches) > filter.Limit {
		matches = matches[:filter.Limit]
	}
	return matches, total, nil
}

// Complete transitions an active session to completed. ErrNotFound when the
// row is missing, another user's, or no longer active.
func (r *SessionRepo) Complete(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time, durationMinutes int) (*domain.WorkSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.sessions[sessionID]
	if !ok || row.UserID != userID || row.Status != domain.SessionStatusActive {
		return nil, domain.ErrNotFound
	}

	row.Status = domain.SessionStatusCompleted
	row.EndedAt = &endedAt
	row.DurationMinutes = &durationMinutes
	r.store.sessions[sessionID] = row

	return cloneSession(row), nil
}

// Cancel transitions an active session to cancelled.
func (r *SessionRepo) Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.sessions[sessionID]
	if !ok || row.UserID != userID || row.Status != domain.SessionStatusActive {
		return nil, domain.ErrNotFound
	}

	row.Status = domain.SessionStatusCancelled
	r.store.sessions[sessionID] = row

	return cloneSession(row), nil
}

// Delete removes the row entirely.
func (r *SessionRepo) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.sessions[sessionID]
	if !ok || row.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.store.sessions, sessionID)
	return nil
}

// DeleteAllByUser removes every session the user owns.
func (r *SessionRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, row := range r.store.sessions {
		if row.UserID == userID {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

// UpdateNotes replaces the session's notes.
func (r *SessionRepo) UpdateNotes(ctx context.Context, userID, sessionID uuid.UUID, notes string) (*domain.WorkSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.sessions[sessionID]
	if !ok || row.UserID != userID {
		return nil, domain.ErrNotFound
	}

	row.Notes = notes
	r.store.sessions[sessionID] = row

	return cloneSession(row), nil
}

// completed collects the user's completed sessions. Caller holds the lock.
func (r *SessionRepo) completed(userID uuid.UUID) []*domain.WorkSession {
	out := make([]*domain.WorkSession, 0)
	for _, row := range r.store.sessions {
		if row.UserID == userID && row.Status == domain.SessionStatusCompleted {
			out = append(out, cloneSession(row))
		}
	}
	return out
}
