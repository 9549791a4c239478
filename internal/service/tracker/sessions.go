package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
)

// GetActiveSession returns the user's active session, or nil if none.
func (s *Service) GetActiveSession(ctx context.Context) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return session, nil
}

// GetSession returns one session by ID.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}

	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// GetRecent returns the most recently completed sessions, newest first.
func (s *Service) GetRecent(ctx context.Context, limit int) ([]*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > s.cfg.RecentSessionsLimit {
		limit = s.cfg.RecentSessionsLimit
	}

	sessions, err := s.sessions.GetRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}
	return sessions, nil
}

// GetHistory returns completed sessions matching the filter plus the total
// match count for pagination.
func (s *Service) GetHistory(ctx context.Context, input GetHistoryInput) ([]*domain.WorkSession, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 || limit > s.cfg.HistoryMaxLimit {
		limit = s.cfg.HistoryMaxLimit
	}

	filter := domain.SessionFilter{
		From:      input.From,
		To:        input.To,
		ProjectID: input.ProjectID,
		Limit:     limit,
		Offset:    input.Offset,
	}

	sessions, total, err := s.sessions.GetHistory(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("get history: %w", err)
	}

	return sessions, total, nil
}

// UpdateNotes replaces the notes on a session.
func (s *Service) UpdateNotes(ctx context.Context, input UpdateNotesInput) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.UpdateNotes(ctx, userID, input.SessionID, input.Notes)
	if err != nil {
		return nil, fmt.Errorf("update notes: %w", err)
	}

	s.log.InfoContext(ctx, "session notes updated",
		slog.String("user_id", userID.String()),
		slog.String("session_id", input.SessionID.String()),
	)

	return session, nil
}
