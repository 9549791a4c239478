package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a user-defined work category that sessions attach to.
// Name uniqueness is deliberately not enforced; duplicates are allowed.
type Project struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	Color       string
	Icon        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectUpdate holds a partial update for a project. Nil fields are
// left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	IsActive    *bool
}

// IsEmpty reports whether the update would change nothing.
func (u ProjectUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Color == nil &&
		u.Icon == nil && u.IsActive == nil
}

// Snapshot returns the denormalized display fields a session keeps,
// so deleting or renaming a project never changes session history.
func (p *Project) Snapshot() ProjectSnapshot {
	if p == nil {
		return DefaultProjectSnapshot()
	}
	return ProjectSnapshot{Name: p.Name, Color: p.Color, Icon: p.Icon}
}

// ProjectSnapshot is the display information captured on a session at
// punch-in time.
type ProjectSnapshot struct {
	Name  string
	Color string
	Icon  string
}

// DefaultProjectSnapshot is used when a user punches in without any project.
func DefaultProjectSnapshot() ProjectSnapshot {
	return ProjectSnapshot{Name: "General Work", Color: "blue", Icon: "work"}
}
