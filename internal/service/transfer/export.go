package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// Export builds the portable document with the user's projects, completed
// sessions and current weekly goal. The active session, if any, is not
// exported.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	projects, err := s.projects.List(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	sessions, err := s.sessions.ListCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	now := s.clock.Now()
	tz := s.userTimezone(ctx, userID)
	weekStart := timex.WeekStartDate(now, tz)

	goalHours := s.cfg.DefaultGoalHours
	goal, err := s.goals.Get(ctx, userID, weekStart)
	if err == nil {
		goalHours = goal.TargetHours
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get weekly goal: %w", err)
	}

	doc := &Document{
		Version:    CurrentVersion,
		ExportDate: now.UTC(),
		UserName:   user.Name,
		WeeklyGoal: goalHours,
		Projects:   make([]ProjectItem, 0, len(projects)),
		Sessions:   make([]SessionItem, 0, len(sessions)),
	}

	for _, p := range projects {
		doc.Projects = append(doc.Projects, ProjectItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Color:       p.Color,
			Icon:        p.Icon,
			IsActive:    p.IsActive,
			CreatedAt:   p.CreatedAt,
		})
	}

	for _, sess := range sessions {
		item := SessionItem{
			ID:           sess.ID,
			ProjectID:    sess.ProjectID,
			ProjectName:  sess.Project.Name,
			ProjectColor: sess.Project.Color,
			ProjectIcon:  sess.Project.Icon,
			StartedAt:    sess.StartedAt,
			Notes:        sess.Notes,
		}
		if sess.EndedAt != nil {
			item.EndedAt = *sess.EndedAt
		}
		if sess.DurationMinutes != nil {
			item.DurationMinutes = *sess.DurationMinutes
		}
		doc.Sessions = append(doc.Sessions, item)
	}

	s.log.InfoContext(ctx, "data exported",
		slog.String("user_id", userID.String()),
		slog.Int("projects", len(doc.Projects)),
		slog.Int("sessions", len(doc.Sessions)),
	)

	return doc, nil
}
