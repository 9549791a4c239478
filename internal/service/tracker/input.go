package tracker

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

const maxNotesLength = 1000

// PunchInInput holds the parameters for starting a work session.
type PunchInInput struct {
	ProjectID *uuid.UUID
	Notes     string
}

// Validate checks all fields and collects all errors.
func (i *PunchInInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID != nil && *i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "must be a valid id"})
	}
	if len(i.Notes) > maxNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// PunchOutInput holds the parameters for finishing the active session.
type PunchOutInput struct {
	// Notes, when non-nil, replaces the session notes at punch-out.
	Notes *string
}

// Validate checks all fields and collects all errors.
func (i *PunchOutInput) Validate() error {
	var errs []domain.FieldError

	if i.Notes != nil && len(*i.Notes) > maxNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetHistoryInput holds the parameters for the paginated session history.
type GetHistoryInput struct {
	From      *time.Time
	To        *time.Time
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i *GetHistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
	}
	if i.ProjectID != nil && *i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "must be a valid id"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateNotesInput holds the parameters for editing session notes.
type UpdateNotesInput struct {
	SessionID uuid.UUID
	Notes     string
}

// Validate checks all fields and collects all errors.
func (i *UpdateNotesInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if len(i.Notes) > maxNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
