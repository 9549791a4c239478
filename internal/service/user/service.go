// Package user implements profile and settings operations.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	UpdateTimezone(ctx context.Context, userID uuid.UUID, timezone string) (*domain.UserSettings, error)
}

// Service implements the user profile business logic.
type Service struct {
	users userRepo
	log   *slog.Logger
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "user"),
	}
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetSettings returns the authenticated user's settings.
func (s *Service) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdateTimezone changes the user's IANA timezone. The name must resolve
// via the tz database.
func (s *Service) UpdateTimezone(ctx context.Context, timezone string) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if timezone == "" {
		return nil, domain.NewValidationError("timezone", "required")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, domain.NewValidationError("timezone", "unknown IANA timezone")
	}

	settings, err := s.users.UpdateTimezone(ctx, userID, timezone)
	if err != nil {
		return nil, fmt.Errorf("update timezone: %w", err)
	}

	s.log.InfoContext(ctx, "timezone updated",
		slog.String("user_id", userID.String()),
		slog.String("timezone", timezone),
	)

	return settings, nil
}
