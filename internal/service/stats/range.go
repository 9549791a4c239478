package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

const maxRangeDays = 366

// GetRangeStatsInput holds the parameters for a per-day stats query.
type GetRangeStatsInput struct {
	From time.Time
	To   time.Time
}

// Validate checks all fields and collects all errors.
func (i *GetRangeStatsInput) Validate() error {
	var errs []domain.FieldError

	if i.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if !i.From.IsZero() && !i.To.IsZero() {
		if i.To.Before(i.From) {
			errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
		} else if i.To.Sub(i.From) > maxRangeDays*24*time.Hour {
			errs = append(errs, domain.FieldError{Field: "to", Message: "range too wide (max 1 year)"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetRangeStats returns the per-day aggregates between two instants,
// bucketed by the user's calendar days. Days without work are absent.
func (s *Service) GetRangeStats(ctx context.Context, input GetRangeStatsInput) ([]domain.DailyStat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tz := s.timezone(ctx, userID)
	from := timex.DateOf(input.From, tz)
	to := timex.DateOf(input.To, tz)

	stats, err := s.stats.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list range stats: %w", err)
	}

	return stats, nil
}
