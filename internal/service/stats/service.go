// Package stats implements daily totals, weekly goal progress, streaks and
// the dashboard aggregate.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/config"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type dailyStatRepo interface {
	Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStat, error)
	SumRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyStat, error)
	ListRecent(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]domain.DailyStat, error)
}

type goalRepo interface {
	Get(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error)
	Upsert(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error)
}

type sessionRepo interface {
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error)
}

type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the statistics business logic.
type Service struct {
	stats    dailyStatRepo
	goals    goalRepo
	sessions sessionRepo
	settings settingsRepo
	clock    clock
	log      *slog.Logger
	cfg      config.TrackerConfig
}

// NewService creates a new stats service.
func NewService(
	log *slog.Logger,
	stats dailyStatRepo,
	goals goalRepo,
	sessions sessionRepo,
	settings settingsRepo,
	cfg config.TrackerConfig,
) *Service {
	return &Service{
		stats:    stats,
		goals:    goals,
		sessions: sessions,
		settings: settings,
		clock:    systemClock{},
		log:      log.With("service", "stats"),
		cfg:      cfg,
	}
}

// timezone loads the user's IANA timezone, falling back to UTC.
func (s *Service) timezone(ctx context.Context, userID uuid.UUID) *time.Location {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
