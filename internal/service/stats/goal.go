package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// SetWeeklyGoalInput holds the parameters for setting the weekly target.
type SetWeeklyGoalInput struct {
	TargetHours int
}

// Validate checks all fields and collects all errors.
func (i *SetWeeklyGoalInput) Validate() error {
	var errs []domain.FieldError

	if i.TargetHours < 1 || i.TargetHours > 168 {
		errs = append(errs, domain.FieldError{Field: "target_hours", Message: "must be between 1 and 168"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetWeeklyGoal sets the target for the week containing now.
func (s *Service) SetWeeklyGoal(ctx context.Context, input SetWeeklyGoalInput) (*domain.WeeklyGoal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tz := s.timezone(ctx, userID)
	weekStart := timex.WeekStartDate(s.clock.Now(), tz)

	goal, err := s.goals.Upsert(ctx, &domain.WeeklyGoal{
		UserID:      userID,
		WeekStart:   weekStart,
		TargetHours: input.TargetHours,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert weekly goal: %w", err)
	}

	s.log.InfoContext(ctx, "weekly goal set",
		slog.String("user_id", userID.String()),
		slog.Int("target_hours", input.TargetHours),
	)

	return goal, nil
}

// GetWeeklyGoal returns the goal for the current week, synthesizing the
// default when the user never set one.
func (s *Service) GetWeeklyGoal(ctx context.Context) (*domain.WeeklyGoal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	tz := s.timezone(ctx, userID)
	weekStart := timex.WeekStartDate(s.clock.Now(), tz)

	target, err := s.targetHours(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklyGoal{
		UserID:      userID,
		WeekStart:   weekStart,
		TargetHours: target,
	}, nil
}
