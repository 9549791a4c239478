package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
)

// GetDashboard returns the aggregate the home screen renders: today's total,
// weekly progress, the streak, the running session and a few recent ones.
func (s *Service) GetDashboard(ctx context.Context) (domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthorized
	}

	today, err := s.GetTodaySummary(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("today summary: %w", err)
	}

	weekly, err := s.GetWeeklyProgress(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("weekly progress: %w", err)
	}

	streak, err := s.GetStreak(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("streak: %w", err)
	}

	active, err := s.activeSession(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	recent, err := s.sessions.GetRecent(ctx, userID, s.cfg.DashboardRecentLimit)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("recent sessions: %w", err)
	}

	dashboard := domain.Dashboard{
		Today:          today,
		Weekly:         weekly,
		StreakDays:     streak,
		ActiveSession:  active,
		RecentSessions: recent,
	}

	s.log.InfoContext(ctx, "dashboard loaded",
		slog.String("user_id", userID.String()),
		slog.Int("today_minutes", today.TotalMinutes),
		slog.Int("streak", streak),
	)

	return dashboard, nil
}
