package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/worktrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

func activeSession(userID uuid.UUID, startedAt time.Time) *domain.WorkSession {
	return &domain.WorkSession{
		ID:        uuid.New(),
		UserID:    userID,
		Project:   domain.DefaultProjectSnapshot(),
		StartedAt: startedAt,
		Status:    domain.SessionStatusActive,
	}
}

func TestCreate_SingleActivePerUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()

	first, err := repo.Create(ctx, activeSession(userID, now))
	if err != nil {
		t.Fatalf("create first active session: %v", err)
	}

	_, err = repo.Create(ctx, activeSession(userID, now.Add(time.Minute)))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for second active session, got %v", err)
	}

	// A different user is unaffected.
	otherID := testhelper.SeedUser(t, pool)
	if _, err := repo.Create(ctx, activeSession(otherID, now)); err != nil {
		t.Fatalf("create active session for other user: %v", err)
	}

	got, err := repo.GetActive(ctx, userID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("active session: got %s, want %s", got.ID, first.ID)
	}
}

func TestComplete_Transition(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	startedAt := time.Now().UTC().Add(-90 * time.Minute)

	created, err := repo.Create(ctx, activeSession(userID, startedAt))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	endedAt := startedAt.Add(90 * time.Minute)
	completed, err := repo.Complete(ctx, userID, created.ID, endedAt, 90)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}

	if completed.Status != domain.SessionStatusCompleted {
		t.Errorf("status: got %s, want completed", completed.Status)
	}
	if completed.DurationMinutes == nil || *completed.DurationMinutes != 90 {
		t.Errorf("duration: got %v, want 90", completed.DurationMinutes)
	}

	// No longer active.
	if _, err := repo.GetActive(ctx, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after completion, got %v", err)
	}

	// Completing again fails: the row is no longer active.
	if _, err := repo.Complete(ctx, userID, created.ID, endedAt, 90); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double completion, got %v", err)
	}
}

func TestCancel_OnlyActive(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, activeSession(userID, time.Now().UTC()))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	cancelled, err := repo.Cancel(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("cancel session: %v", err)
	}
	if cancelled.Status != domain.SessionStatusCancelled {
		t.Errorf("status: got %s, want cancelled", cancelled.Status)
	}

	if _, err := repo.Cancel(ctx, userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double cancel, got %v", err)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, activeSession(userID, time.Now().UTC()))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := repo.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	if _, err := repo.GetByID(ctx, userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestGetByID_OtherUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	ownerID := testhelper.SeedUser(t, pool)
	strangerID := testhelper.SeedUser(t, pool)

	sessionID := testhelper.SeedCompletedSession(t, pool, ownerID, time.Now().UTC().Add(-time.Hour), 30)

	if _, err := repo.GetByID(ctx, strangerID, sessionID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's session, got %v", err)
	}
}

func TestGetHistory_FiltersAndPaging(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testhelper.SeedCompletedSession(t, pool, userID, base.AddDate(0, 0, i), 60)
	}

	// Window covering the middle three days.
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 4)
	sessions, total, err := repo.GetHistory(ctx, userID, domain.SessionFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions: got %d, want 3", len(sessions))
	}
	// Newest first.
	if !sessions[0].StartedAt.After(sessions[1].StartedAt) {
		t.Error("expected sessions ordered newest first")
	}

	// Paging reports the full match count.
	paged, total, err := repo.GetHistory(ctx, userID, domain.SessionFilter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("get history paged: %v", err)
	}
	if total != 5 {
		t.Errorf("paged total: got %d, want 5", total)
	}
	if len(paged) != 1 {
		t.Errorf("paged sessions: got %d, want 1", len(paged))
	}
}

func TestGetHistory_ProjectFilter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	projectID := testhelper.SeedProject(t, pool, userID, "Backend")

	started := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	ended := started.Add(time.Hour)
	minutes := 60
	tagged := &domain.WorkSession{
		ID:              uuid.New(),
		UserID:          userID,
		ProjectID:       &projectID,
		Project:         domain.ProjectSnapshot{Name: "Backend", Color: "blue", Icon: "work"},
		StartedAt:       started,
		EndedAt:         &ended,
		DurationMinutes: &minutes,
		Status:          domain.SessionStatusCompleted,
	}
	if _, err := repo.Create(ctx, tagged); err != nil {
		t.Fatalf("create tagged session: %v", err)
	}
	testhelper.SeedCompletedSession(t, pool, userID, started.Add(2*time.Hour), 30)

	sessions, total, err := repo.GetHistory(ctx, userID, domain.SessionFilter{ProjectID: &projectID})
	if err != nil {
		t.Fatalf("get history by project: %v", err)
	}
	if total != 1 || len(sessions) != 1 {
		t.Fatalf("expected exactly one match, got total=%d len=%d", total, len(sessions))
	}
	if sessions[0].ID != tagged.ID {
		t.Errorf("matched session: got %s, want %s", sessions[0].ID, tagged.ID)
	}
}

func TestUpdateNotes(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := session.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	sessionID := testhelper.SeedCompletedSession(t, pool, userID, time.Now().UTC().Add(-time.Hour), 45)

	updated, err := repo.UpdateNotes(ctx, userID, sessionID, "wrapped up the parser")
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if updated.Notes != "wrapped up the parser" {
		t.Errorf("notes: got %q", updated.Notes)
	}
}
