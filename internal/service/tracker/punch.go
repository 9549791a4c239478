package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// PunchOutResult is the outcome of a punch-out. Discarded is set when the
// session ran shorter than the minimum and was dropped instead of recorded.
type PunchOutResult struct {
	Session   *domain.WorkSession
	Discarded bool
}

// PunchIn starts a new work session. Returns domain.ErrConflict if the user
// already has an active session.
func (s *Service) PunchIn(ctx context.Context, input PunchInInput) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.sessions.GetActive(ctx, userID); err == nil {
		return nil, fmt.Errorf("session already active: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check active session: %w", err)
	}

	projectID, snapshot, err := s.resolveProject(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	session := &domain.WorkSession{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		Project:   snapshot,
		StartedAt: s.clock.Now().UTC(),
		Notes:     input.Notes,
		Status:    domain.SessionStatusActive,
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		// Lost a race against a concurrent punch-in; the partial unique
		// index rejected the second active row.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("session already active: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.InfoContext(ctx, "punched in",
		slog.String("user_id", userID.String()),
		slog.String("session_id", created.ID.String()),
		slog.String("project", created.Project.Name),
	)

	return created, nil
}

// PunchOut finishes the active session. The session row and the daily
// aggregate move in one transaction. Sessions shorter than the configured
// minimum are deleted and reported as discarded.
func (s *Service) PunchOut(ctx context.Context, input PunchOutInput) (PunchOutResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return PunchOutResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return PunchOutResult{}, err
	}

	active, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return PunchOutResult{}, fmt.Errorf("no active session: %w", domain.ErrNotFound)
		}
		return PunchOutResult{}, fmt.Errorf("get active session: %w", err)
	}

	now := s.clock.Now().UTC()
	minutes := timex.ElapsedMinutes(active.StartedAt, now)

	if minutes < s.cfg.MinSessionMinutes {
		if err := s.sessions.Delete(ctx, userID, active.ID); err != nil {
			return PunchOutResult{}, fmt.Errorf("discard session: %w", err)
		}
		s.log.InfoContext(ctx, "session discarded",
			slog.String("user_id", userID.String()),
			slog.String("session_id", active.ID.String()),
			slog.Int("minutes", minutes),
		)
		return PunchOutResult{Discarded: true}, nil
	}

	tz := s.timezone(ctx, userID)
	date := timex.DateOf(active.StartedAt, tz)

	var completed *domain.WorkSession
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		completed, txErr = s.sessions.Complete(txCtx, userID, active.ID, now, minutes)
		if txErr != nil {
			return fmt.Errorf("complete session: %w", txErr)
		}

		if input.Notes != nil {
			completed, txErr = s.sessions.UpdateNotes(txCtx, userID, active.ID, *input.Notes)
			if txErr != nil {
				return fmt.Errorf("update notes: %w", txErr)
			}
		}

		if txErr = s.stats.AddSession(txCtx, userID, date, minutes); txErr != nil {
			return fmt.Errorf("add daily stat: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return PunchOutResult{}, fmt.Errorf("punch out: %w", err)
	}

	s.log.InfoContext(ctx, "punched out",
		slog.String("user_id", userID.String()),
		slog.String("session_id", completed.ID.String()),
		slog.Int("minutes", minutes),
	)

	return PunchOutResult{Session: completed}, nil
}

// Cancel abandons the active session without recording any time.
// Idempotent noop when no session is active.
func (s *Service) Cancel(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	active, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get active session: %w", err)
	}

	if _, err := s.sessions.Cancel(ctx, userID, active.ID); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}

	s.log.InfoContext(ctx, "session cancelled",
		slog.String("user_id", userID.String()),
		slog.String("session_id", active.ID.String()),
	)

	return nil
}

// resolveProject picks the snapshot for a new session. An explicit project
// must exist and be active; otherwise the user's default project is used,
// falling back to the built-in snapshot for users without projects.
func (s *Service) resolveProject(ctx context.Context, userID uuid.UUID, explicit *uuid.UUID) (*uuid.UUID, domain.ProjectSnapshot, error) {
	if explicit != nil {
		project, err := s.projects.GetByID(ctx, userID, *explicit)
		if err != nil {
			return nil, domain.ProjectSnapshot{}, fmt.Errorf("get project: %w", err)
		}
		if !project.IsActive {
			return nil, domain.ProjectSnapshot{}, domain.NewValidationError("project_id", "project is archived")
		}
		return &project.ID, project.Snapshot(), nil
	}

	project, err := s.projects.GetDefault(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.DefaultProjectSnapshot(), nil
		}
		return nil, domain.ProjectSnapshot{}, fmt.Errorf("get default project: %w", err)
	}
	return &project.ID, project.Snapshot(), nil
}
