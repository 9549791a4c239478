package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a work session.
// Active is the only non-terminal state; a user holds zero or one
// active session at any time (enforced by the storage layer).
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// WorkSession is a single punch-in/punch-out interval.
// EndedAt and DurationMinutes are set only on the transition to completed;
// a completed session always has DurationMinutes >= 1.
type WorkSession struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ProjectID       *uuid.UUID
	Project         ProjectSnapshot
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes *int
	Notes           string
	Status          SessionStatus
	CreatedAt       time.Time
}

// IsActive reports whether the session is still running.
func (s *WorkSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// Duration returns the recorded duration, or 0 for sessions that never
// completed.
func (s *WorkSession) Duration() int {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}

// SessionFilter narrows history queries. Zero values mean "no filter".
type SessionFilter struct {
	From      *time.Time
	To        *time.Time
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
}
