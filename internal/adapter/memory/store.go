// Package memory implements every repository interface with in-process maps.
// It backs the database-free local variant and doubles as a fast fixture for
// service-level tests. One Store owns all the data behind a single mutex; the
// per-entity repos returned by its accessors share that lock.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

type statKey struct {
	user uuid.UUID
	date string // time.DateOnly in the user's timezone
}

type goalKey struct {
	user uuid.UUID
	week string
}

// Store holds all tracker data for every user.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]domain.User
	emails   map[string]uuid.UUID
	settings map[uuid.UUID]domain.UserSettings
	tokens   map[uuid.UUID]domain.RefreshToken
	projects map[uuid.UUID]domain.Project
	sessions map[uuid.UUID]domain.WorkSession
	stats    map[statKey]domain.DailyStat
	goals    map[goalKey]domain.WeeklyGoal
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		emails:   make(map[string]uuid.UUID),
		settings: make(map[uuid.UUID]domain.UserSettings),
		tokens:   make(map[uuid.UUID]domain.RefreshToken),
		projects: make(map[uuid.UUID]domain.Project),
		sessions: make(map[uuid.UUID]domain.WorkSession),
		stats:    make(map[statKey]domain.DailyStat),
		goals:    make(map[goalKey]domain.WeeklyGoal),
	}
}

// Users returns the user + settings repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Tokens returns the refresh token repository view.
func (s *Store) Tokens() *TokenRepo { return &TokenRepo{store: s} }

// Projects returns the project repository view.
func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{store: s} }

// Sessions returns the work session repository view.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{store: s} }

// Stats returns the daily aggregate repository view.
func (s *Store) Stats() *DailyStatRepo { return &DailyStatRepo{store: s} }

// Goals returns the weekly goal repository view.
func (s *Store) Goals() *GoalRepo { return &GoalRepo{store: s} }

// RunInTx makes fn atomic against this store: a snapshot is taken first and
// restored wholesale when fn fails. There is no isolation between concurrent
// transactions; the local variant is single-user by construction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	users    map[uuid.UUID]domain.User
	emails   map[string]uuid.UUID
	settings map[uuid.UUID]domain.UserSettings
	tokens   map[uuid.UUID]domain.RefreshToken
	projects map[uuid.UUID]domain.Project
	sessions map[uuid.UUID]domain.WorkSession
	stats    map[statKey]domain.DailyStat
	goals    map[goalKey]domain.WeeklyGoal
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		users:    copyMap(s.users),
		emails:   copyMap(s.emails),
		settings: copyMap(s.settings),
		tokens:   copyMap(s.tokens),
		projects: copyMap(s.projects),
		sessions: copyMap(s.sessions),
		stats:    copyMap(s.stats),
		goals:    copyMap(s.goals),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.emails = snap.emails
	s.settings = snap.settings
	s.tokens = snap.tokens
	s.projects = snap.projects
	s.sessions = snap.sessions
	s.stats = snap.stats
	s.goals = snap.goals
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func dateKey(d time.Time) string { return d.Format(time.DateOnly) }

// cloneSession deep-copies the pointer fields so callers cannot mutate
// stored rows through aliased pointers.
func cloneSession(s domain.WorkSession) *domain.WorkSession {
	out := s
	if s.ProjectID != nil {
		id := *s.ProjectID
		out.ProjectID = &id
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	if s.DurationMinutes != nil {
		m := *s.DurationMinutes
		out.DurationMinutes = &m
	}
	return &out
}

func cloneProject(p domain.Project) *domain.Project {
	out := p
	if p.Description != nil {
		d := *p.Description
		out.Description = &d
	}
	return &out
}

func cloneToken(t domain.RefreshToken) *domain.RefreshToken {
	out := t
	if t.RevokedAt != nil {
		at := *t.RevokedAt
		out.RevokedAt = &at
	}
	return &out
}
