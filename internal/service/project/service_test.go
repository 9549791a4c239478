package project

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/pkg/ctxutil"
)

var _ projectRepo = &projectRepoMock{}

type projectRepoMock struct {
	CreateFunc  func(ctx context.Context, project *domain.Project) (*domain.Project, error)
	GetByIDFunc func(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	ListFunc    func(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error)
	UpdateFunc  func(ctx context.Context, userID, projectID uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error)
	DeleteFunc  func(ctx context.Context, userID, projectID uuid.UUID) error

	calls struct {
		Create []struct {
			Project *domain.Project
		}
		Update []struct {
			UserID    uuid.UUID
			ProjectID uuid.UUID
			Update    domain.ProjectUpdate
		}
		Delete []struct {
			UserID    uuid.UUID
			ProjectID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *projectRepoMock) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if mock.CreateFunc == nil {
		panic("projectRepoMock.CreateFunc: method is nil but projectRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Project *domain.Project
	}{project})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, project)
}

func (mock *projectRepoMock) CreateCalls() []struct {
	Project *domain.Project
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *projectRepoMock) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	if mock.GetByIDFunc == nil {
		panic("projectRepoMock.GetByIDFunc: method is nil but projectRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, userID, projectID)
}

func (mock *projectRepoMock) List(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*domain.Project, error) {
	if mock.ListFunc == nil {
		panic("projectRepoMock.ListFunc: method is nil but projectRepo.List was just called")
	}
	return mock.ListFunc(ctx, userID, includeInactive)
}

func (mock *projectRepoMock) Update(ctx context.Context, userID, projectID uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error) {
	if mock.UpdateFunc == nil {
		panic("projectRepoMock.UpdateFunc: method is nil but projectRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		UserID    uuid.UUID
		ProjectID uuid.UUID
		Update    domain.ProjectUpdate
	}{userID, projectID, update})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, userID, projectID, update)
}

func (mock *projectRepoMock) UpdateCalls() []struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Update    domain.ProjectUpdate
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *projectRepoMock) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("projectRepoMock.DeleteFunc: method is nil but projectRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		UserID    uuid.UUID
		ProjectID uuid.UUID
	}{userID, projectID})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, userID, projectID)
}

func (mock *projectRepoMock) DeleteCalls() []struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func TestService_Create_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mockRepo := &projectRepoMock{
		CreateFunc: func(ctx context.Context, project *domain.Project) (*domain.Project, error) {
			return project, nil
		},
	}

	svc := &Service{projects: mockRepo, log: slog.Default()}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	project, err := svc.Create(ctx, CreateInput{Name: "Backend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Name != "Backend" {
		t.Errorf("name: got %q", project.Name)
	}
	if !project.IsActive {
		t.Error("new project must be active")
	}
	if project.Color != "blue" || project.Icon != "work" {
		t.Errorf("defaults not applied: color=%q icon=%q", project.Color, project.Icon)
	}
	if project.UserID != userID {
		t.Errorf("user id: got %v, want %v", project.UserID, userID)
	}
}

func TestService_Create_EmptyName(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &Service{log: slog.Default()}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	_, err := svc.Create(ctx, CreateInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_Update_EmptyUpdateRejected(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &Service{log: slog.Default()}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	_, err := svc.Update(ctx, uuid.New(), UpdateInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_Update_Partial(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	projectID := uuid.New()
	newName := "Renamed"

	mockRepo := &projectRepoMock{
		UpdateFunc: func(ctx context.Context, uid, pid uuid.UUID, update domain.ProjectUpdate) (*domain.Project, error) {
			if update.Name == nil || *update.Name != newName {
				t.Errorf("update name not passed through: %+v", update)
			}
			if update.Color != nil || update.Icon != nil || update.IsActive != nil {
				t.Errorf("unset fields must stay nil: %+v", update)
			}
			return &domain.Project{ID: pid, UserID: uid, Name: newName, IsActive: true}, nil
		},
	}

	svc := &Service{projects: mockRepo, log: slog.Default()}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	project, err := svc.Update(ctx, projectID, UpdateInput{Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Name != newName {
		t.Errorf("name: got %q, want %q", project.Name, newName)
	}
}

func TestService_Delete_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mockRepo := &projectRepoMock{
		DeleteFunc: func(ctx context.Context, uid, pid uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	svc := &Service{projects: mockRepo, log: slog.Default()}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	err := svc.Delete(ctx, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &Service{log: slog.Default()}
	_, err := svc.List(context.Background(), false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
