// Package project implements project management business logic.
package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
)

type projectRepo interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
}

// Service implements the project business logic.
type Service struct {
	projects projectRepo
	log      *slog.Logger
}

// NewService creates a new project service.
func NewService(log *slog.Logger, projects projectRepo) *Service {
	return &Service{
		projects: projects,
		log:      log.With("service", "project"),
	}
}

// Create adds a new project for the user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Project, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		IsActive:    true,
	}
	if project.Color == "" {
		project.Color = domain.DefaultProjectSnapshot().Color
	}
	if project.Icon == "" {
		project.Icon = domain.DefaultProjectSnapshot().Icon
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.InfoContext(ctx, "project created",
		slog.String("user_id", userID.String()),
		slog.String("project_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}

// Get returns one project by ID.
func (s *Service) Get(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}

	project, err := s.projects.GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// List returns the user's projects. includeInactive adds archived ones.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]*domain.Project, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	projects, err := s.projects.List(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Update applies a partial update to a project.
func (s *Service) Update(ctx context.Context, projectID uuid.UUID, input UpdateInput) (*domain.Project, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	update := domain.ProjectUpdate{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		IsActive:    input.IsActive,
	}
	if update.IsEmpty() {
		return nil, domain.NewValidationError("update", "at least one field must be set")
	}

	updated, err := s.projects.Update(ctx, userID, projectID, update)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.log.InfoContext(ctx, "project updated",
		slog.String("user_id", userID.String()),
		slog.String("project_id", projectID.String()),
	)

	return updated, nil
}

// Delete permanently removes a project. Completed sessions keep the
// denormalized project snapshot, so history survives the deletion.
func (s *Service) Delete(ctx context.Context, projectID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if projectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}

	if err := s.projects.Delete(ctx, userID, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.InfoContext(ctx, "project deleted",
		slog.String("user_id", userID.String()),
		slog.String("project_id", projectID.String()),
	)

	return nil
}
