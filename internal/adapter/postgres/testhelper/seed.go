package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUser inserts a user row with generated identity and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())`,
		id, uuid.NewString()+"@example.com", "Test User", "test-hash",
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return id
}

// SeedProject inserts an active project for the user and returns its ID.
func SeedProject(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, user_id, name, color, icon, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, 'blue', 'work', true, now(), now())`,
		id, userID, name,
	)
	if err != nil {
		t.Fatalf("testhelper: seed project: %v", err)
	}

	return id
}

// SeedCompletedSession inserts a completed session and returns its ID.
func SeedCompletedSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, startedAt time.Time, minutes int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	endedAt := startedAt.Add(time.Duration(minutes) * time.Minute)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO work_sessions
		   (id, user_id, project_name, project_color, project_icon,
		    started_at, ended_at, duration_minutes, notes, status, created_at)
		 VALUES ($1, $2, 'General Work', 'blue', 'work', $3, $4, $5, '', 'completed', now())`,
		id, userID, startedAt, endedAt, minutes,
	)
	if err != nil {
		t.Fatalf("testhelper: seed completed session: %v", err)
	}

	return id
}
