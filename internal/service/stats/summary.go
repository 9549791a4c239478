package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// GetTodaySummary returns the user's total for the current calendar day.
// The running session contributes its elapsed minutes on top of the
// completed-session aggregate.
func (s *Service) GetTodaySummary(ctx context.Context) (domain.TodaySummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.TodaySummary{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()
	tz := s.timezone(ctx, userID)
	today := timex.DateOf(now, tz)

	summary := domain.TodaySummary{}

	stat, err := s.stats.Get(ctx, userID, today)
	if err == nil {
		summary.TotalMinutes = stat.TotalMinutes
		summary.SessionCount = stat.SessionCount
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.TodaySummary{}, fmt.Errorf("get today stat: %w", err)
	}

	active, err := s.activeSession(ctx, userID)
	if err != nil {
		return domain.TodaySummary{}, err
	}
	if active != nil {
		summary.HasActiveSession = true
		// A session started yesterday already lands in yesterday's bucket
		// on punch-out; counting it here would inflate today and then
		// double-count once it completes.
		if timex.SameDay(active.StartedAt, now, tz) {
			summary.TotalMinutes += timex.ElapsedMinutes(active.StartedAt, now)
		}
	}

	return summary, nil
}

// GetWeeklyProgress returns progress against the goal of the week containing
// now. Percentage is capped at 100; the live session counts toward the total.
func (s *Service) GetWeeklyProgress(ctx context.Context) (domain.WeeklyProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.WeeklyProgress{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()
	tz := s.timezone(ctx, userID)
	weekStart := timex.WeekStartDate(now, tz)
	nextWeekStart := weekStart.AddDate(0, 0, 7)

	total, err := s.stats.SumRange(ctx, userID, weekStart, nextWeekStart)
	if err != nil {
		return domain.WeeklyProgress{}, fmt.Errorf("sum week: %w", err)
	}

	active, err := s.activeSession(ctx, userID)
	if err != nil {
		return domain.WeeklyProgress{}, err
	}
	if active != nil {
		weekBegin := timex.WeekStart(now, tz)
		weekEnd := timex.NextWeekStart(now, tz)
		if !active.StartedAt.Before(weekBegin) && active.StartedAt.Before(weekEnd) {
			total += timex.ElapsedMinutes(active.StartedAt, now)
		}
	}

	target, err := s.targetHours(ctx, userID, weekStart)
	if err != nil {
		return domain.WeeklyProgress{}, err
	}

	return buildProgress(weekStart, total, target), nil
}

// GetStreak returns the number of consecutive days with recorded work,
// counted backward from today. A quiet today does not break the streak;
// it starts from yesterday instead.
func (s *Service) GetStreak(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	now := s.clock.Now()
	tz := s.timezone(ctx, userID)
	today := timex.DateOf(now, tz)
	cutoff := today.AddDate(0, 0, -s.cfg.StreakLookbackDays)

	days, err := s.stats.ListRecent(ctx, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list recent stats: %w", err)
	}

	return calculateStreak(days, today), nil
}

// activeSession fetches the active session, mapping not-found to nil.
func (s *Service) activeSession(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	active, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return active, nil
}

// targetHours returns the goal for the week, falling back to the configured
// default when none was set.
func (s *Service) targetHours(ctx context.Context, userID uuid.UUID, weekStart time.Time) (int, error) {
	goal, err := s.goals.Get(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.cfg.DefaultGoalHours, nil
		}
		return 0, fmt.Errorf("get weekly goal: %w", err)
	}
	return goal.TargetHours, nil
}

// buildProgress derives the display fields from raw minutes and the target.
// The percentage is computed from the unrounded hour value, then capped.
func buildProgress(weekStart time.Time, totalMinutes, targetHours int) domain.WeeklyProgress {
	hours := float64(totalMinutes) / 60.0

	percentage := 0
	if targetHours > 0 {
		percentage = int(math.Round(math.Min(100, hours/float64(targetHours)*100)))
	}

	remaining := float64(targetHours) - hours
	if remaining < 0 {
		remaining = 0
	}

	return domain.WeeklyProgress{
		WeekStart:      weekStart,
		TotalMinutes:   totalMinutes,
		Hours:          hours,
		TargetHours:    targetHours,
		Percentage:     percentage,
		RemainingHours: remaining,
	}
}

// calculateStreak walks the day buckets backward from today.
// days must be sorted DESC by date with zero-minute days already filtered out.
func calculateStreak(days []domain.DailyStat, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	expected := today
	if !days[0].Date.Equal(today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if !d.Date.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}
