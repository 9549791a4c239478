package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// CurrentVersion is the export document schema version this build writes
// and the only one it accepts on import.
const CurrentVersion = 1

// Document is the portable representation of one user's data.
type Document struct {
	Version    int           `json:"version"`
	ExportDate time.Time     `json:"exportDate"`
	UserName   string        `json:"userName"`
	WeeklyGoal int           `json:"weeklyGoal"`
	Projects   []ProjectItem `json:"projects"`
	Sessions   []SessionItem `json:"sessions"`
}

// ProjectItem is a project row in the export document.
type ProjectItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionItem is a completed session row in the export document.
type SessionItem struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       *uuid.UUID `json:"projectId,omitempty"`
	ProjectName     string     `json:"projectName"`
	ProjectColor    string     `json:"projectColor"`
	ProjectIcon     string     `json:"projectIcon"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         time.Time  `json:"endedAt"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           string     `json:"notes,omitempty"`
}

// Validate checks the document before import.
func (d *Document) Validate() error {
	var errs []domain.FieldError

	if d.Version != CurrentVersion {
		errs = append(errs, domain.FieldError{Field: "version", Message: "unsupported document version"})
	}
	if d.WeeklyGoal < 0 || d.WeeklyGoal > 168 {
		errs = append(errs, domain.FieldError{Field: "weeklyGoal", Message: "must be between 0 and 168"})
	}

	projectIDs := make(map[uuid.UUID]bool, len(d.Projects))
	for _, p := range d.Projects {
		if p.ID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "projects", Message: "project id required"})
			continue
		}
		if projectIDs[p.ID] {
			errs = append(errs, domain.FieldError{Field: "projects", Message: "duplicate project id " + p.ID.String()})
		}
		projectIDs[p.ID] = true
		if p.Name == "" {
			errs = append(errs, domain.FieldError{Field: "projects", Message: "project name required"})
		}
	}

	sessionIDs := make(map[uuid.UUID]bool, len(d.Sessions))
	for _, s := range d.Sessions {
		if s.ID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "sessions", Message: "session id required"})
			continue
		}
		if sessionIDs[s.ID] {
			errs = append(errs, domain.FieldError{Field: "sessions", Message: "duplicate session id " + s.ID.String()})
		}
		sessionIDs[s.ID] = true
		if s.EndedAt.Before(s.StartedAt) {
			errs = append(errs, domain.FieldError{Field: "sessions", Message: "session " + s.ID.String() + " ends before it starts"})
		}
		if s.DurationMinutes < 1 {
			errs = append(errs, domain.FieldError{Field: "sessions", Message: "duration must be at least 1 minute on session " + s.ID.String()})
		}
		if s.ProjectID != nil && !projectIDs[*s.ProjectID] {
			errs = append(errs, domain.FieldError{Field: "sessions", Message: "session " + s.ID.String() + " references unknown project"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
