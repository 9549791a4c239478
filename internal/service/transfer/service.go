// Package transfer implements full-account export and import.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/config"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

type sessionRepo interface {
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]*domain.WorkSession, error)
	Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

type projectRepo interface {
	List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

type dailyStatRepo interface {
	ReplaceAll(ctx context.Context, userID uuid.UUID, stats []domain.DailyStat) error
}

type goalRepo interface {
	Get(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error)
	Upsert(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
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

// Service implements the export/import business logic.
type Service struct {
	sessions sessionRepo
	projects projectRepo
	stats    dailyStatRepo
	goals    goalRepo
	users    userRepo
	tx       txManager
	clock    clock
	log      *slog.Logger
	cfg      config.TrackerConfig
}

// NewService creates a new transfer service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	projects projectRepo,
	stats dailyStatRepo,
	goals goalRepo,
	users userRepo,
	tx txManager,
	cfg config.TrackerConfig,
) *Service {
	return &Service{
		sessions: sessions,
		projects: projects,
		stats:    stats,
		goals:    goals,
		users:    users,
		tx:       tx,
		clock:    systemClock{},
		log:      log.With("service", "transfer"),
		cfg:      cfg,
	}
}
