package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// UserRepo implements the user + settings repository over the shared store.
type UserRepo struct {
	store *Store
}

// Create stores a user. A taken email is rejected with ErrAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.emails[user.Email]; taken {
		return nil, domain.ErrAlreadyExists
	}

	row := *user
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	r.store.users[row.ID] = row
	r.store.emails[row.Email] = row.ID

	out := row
	return &out, nil
}

// GetByID returns the user or ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := row
	return &out, nil
}

// GetByEmail returns the user with that email or ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.emails[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.store.users[id]
	return &out, nil
}

// CreateSettings stores the user's settings row.
func (r *UserRepo) CreateSettings(ctx context.Context, settings *domain.UserSettings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := *settings
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	r.store.settings[row.UserID] = row
	return nil
}

// GetSettings returns the user's settings or ErrNotFound.
func (r *UserRepo) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.settings[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := row
	return &out, nil
}

// UpdateTimezone sets the user's IANA timezone.
func (r *UserRepo) UpdateTimezone(ctx context.Context, userID uuid.UUID, timezone string) (*domain.UserSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.settings[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	row.Timezone = timezone
	row.UpdatedAt = time.Now().UTC()
	r.store.settings[userID] = row

	out := row
	return &out, nil
}

// TokenRepo implements the refresh token repository over the shared store.
type TokenRepo struct {
	store *Store
}

// Create stores a refresh token hash.
func (r *TokenRepo) Create(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := *cloneToken(*token)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	r.store.tokens[row.ID] = row

	return cloneToken(row), nil
}

// GetByHash looks a token up by its SHA-256 hash.
func (r *TokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.tokens {
		if row.TokenHash == tokenHash {
			return cloneToken(row), nil
		}
	}
	return nil, domain.ErrNotFound
}

// RevokeByID marks a single token as revoked. Idempotent.
func (r *TokenRepo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.tokens[id]
	if !ok || row.RevokedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	row.RevokedAt = &now
	r.store.tokens[id] = row
	return nil
}

// RevokeAllByUser revokes every live token the user holds.
func (r *TokenRepo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	for id, row := range r.store.tokens {
		if row.UserID == userID && row.RevokedAt == nil {
			row.RevokedAt = &now
			r.store.tokens[id] = row
		}
	}
	return nil
}

// DeleteExpired purges tokens that expired before now, plus revoked ones.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for id, row := range r.store.tokens {
		if row.ExpiresAt.Before(now) || row.RevokedAt != nil {
			delete(r.store.tokens, id)
			removed++
		}
	}
	return removed, nil
}
