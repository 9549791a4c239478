// Package tracker implements the punch-in / punch-out business logic.
package tracker

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

type sessionRepo interface {
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error)
	GetHistory(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]*domain.WorkSession, int, error)
	Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	Complete(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time, durationMinutes int) (*domain.WorkSession, error)
	Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
	UpdateNotes(ctx context.Context, userID, sessionID uuid.UUID, notes string) (*domain.WorkSession, error)
}

type projectRepo interface {
	GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*domain.Project, error)
}

type dailyStatRepo interface {
	AddSession(ctx context.Context, userID uuid.UUID, date time.Time, minutes int) error
}

type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the work session tracking business logic.
type Service struct {
	sessions sessionRepo
	projects projectRepo
	stats    dailyStatRepo
	settings settingsRepo
	tx       txManager
	clock    clock
	log      *slog.Logger
	cfg      config.TrackerConfig
}

// NewService creates a new tracker service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	projects projectRepo,
	stats dailyStatRepo,
	settings settingsRepo,
	tx txManager,
	cfg config.TrackerConfig,
) *Service {
	return &Service{
		sessions: sessions,
		projects: projects,
		stats:    stats,
		settings: settings,
		tx:       tx,
		clock:    systemClock{},
		log:      log.With("service", "tracker"),
		cfg:      cfg,
	}
}

// timezone loads the user's IANA timezone, falling back to UTC when the
// settings row is missing or holds an unknown name.
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
