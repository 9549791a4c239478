package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// ImportResult reports what an import wrote.
type ImportResult struct {
	Projects int
	Sessions int
}

// Import replaces the user's projects, sessions, daily aggregates and weekly
// goal with the document's contents. Everything happens in one transaction;
// a failed import leaves the account untouched. The daily aggregates are
// recomputed from the imported sessions rather than trusted from the client.
func (s *Service) Import(ctx context.Context, doc *Document) (ImportResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ImportResult{}, domain.ErrUnauthorized
	}

	if err := doc.Validate(); err != nil {
		return ImportResult{}, err
	}

	tz := s.userTimezone(ctx, userID)
	weekStart := timex.WeekStartDate(s.clock.Now(), tz)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Sessions go first so the project FK never dangles.
		if err := s.sessions.DeleteAllByUser(txCtx, userID); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		if err := s.projects.DeleteAllByUser(txCtx, userID); err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}
		if err := s.goals.DeleteAllByUser(txCtx, userID); err != nil {
			return fmt.Errorf("clear goals: %w", err)
		}

		for _, p := range doc.Projects {
			project := &domain.Project{
				ID:          p.ID,
				UserID:      userID,
				Name:        p.Name,
				Description: p.Description,
				Color:       orDefault(p.Color, domain.DefaultProjectSnapshot().Color),
				Icon:        orDefault(p.Icon, domain.DefaultProjectSnapshot().Icon),
				IsActive:    p.IsActive,
				CreatedAt:   p.CreatedAt,
			}
			if _, err := s.projects.Create(txCtx, project); err != nil {
				return fmt.Errorf("import project %s: %w", p.ID, err)
			}
		}

		for _, item := range doc.Sessions {
			endedAt := item.EndedAt
			minutes := item.DurationMinutes
			session := &domain.WorkSession{
				ID:              item.ID,
				UserID:          userID,
				ProjectID:       item.ProjectID,
				Project:         domain.ProjectSnapshot{Name: item.ProjectName, Color: item.ProjectColor, Icon: item.ProjectIcon},
				StartedAt:       item.StartedAt,
				EndedAt:         &endedAt,
				DurationMinutes: &minutes,
				Notes:           item.Notes,
				Status:          domain.SessionStatusCompleted,
			}
			if _, err := s.sessions.Create(txCtx, session); err != nil {
				return fmt.Errorf("import session %s: %w", item.ID, err)
			}
		}

		stats := rebuildDailyStats(userID, doc.Sessions, tz)
		if err := s.stats.ReplaceAll(txCtx, userID, stats); err != nil {
			return fmt.Errorf("rebuild daily stats: %w", err)
		}

		if doc.WeeklyGoal > 0 {
			goal := &domain.WeeklyGoal{
				UserID:      userID,
				WeekStart:   weekStart,
				TargetHours: doc.WeeklyGoal,
			}
			if _, err := s.goals.Upsert(txCtx, goal); err != nil {
				return fmt.Errorf("import weekly goal: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}

	result := ImportResult{Projects: len(doc.Projects), Sessions: len(doc.Sessions)}

	s.log.InfoContext(ctx, "data imported",
		slog.String("user_id", userID.String()),
		slog.Int("projects", result.Projects),
		slog.Int("sessions", result.Sessions),
	)

	return result, nil
}

// userTimezone loads the user's IANA timezone, falling back to UTC.
func (s *Service) userTimezone(ctx context.Context, userID uuid.UUID) *time.Location {
	settings, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return time.UTC
	}
	return timex.ParseTimezone(settings.Timezone)
}

// rebuildDailyStats re-derives the per-day aggregates from completed
// sessions, bucketing by the session's start date in the user's timezone.
func rebuildDailyStats(userID uuid.UUID, sessions []SessionItem, tz *time.Location) []domain.DailyStat {
	byDate := make(map[time.Time]*domain.DailyStat)
	for _, s := range sessions {
		date := timex.DateOf(s.StartedAt, tz)
		stat, ok := byDate[date]
		if !ok {
			stat = &domain.DailyStat{UserID: userID, Date: date}
			byDate[date] = stat
		}
		stat.TotalMinutes += s.DurationMinutes
		stat.SessionCount++
	}

	stats := make([]domain.DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date.Before(stats[j].Date) })
	return stats
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
