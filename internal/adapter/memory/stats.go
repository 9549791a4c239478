package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// DailyStatRepo implements the daily aggregate repository over the shared
// store. Semantics match the SQL variant: additive upsert, half-open sums.
type DailyStatRepo struct {
	store *Store
}

// AddSession folds one completed session into the day's aggregate.
func (r *DailyStatRepo) AddSession(ctx context.Context, userID uuid.UUID, date time.Time, minutes int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := statKey{user: userID, date: dateKey(date)}
	stat, ok := r.store.stats[key]
	if !ok {
		stat = domain.DailyStat{UserID: userID, Date: date}
	}
	stat.TotalMinutes += minutes
	stat.SessionCount++
	r.store.stats[key] = stat
	return nil
}

// Get returns the day's aggregate or ErrNotFound.
func (r *DailyStatRepo) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stat, ok := r.store.stats[statKey{user: userID, date: dateKey(date)}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := stat
	return &out, nil
}

// SumRange totals minutes over [from, to).
func (r *DailyStatRepo) SumRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := 0
	for _, stat := range r.store.stats {
		if stat.UserID != userID {
			continue
		}
		if stat.Date.Before(from) || !stat.Date.Before(to) {
			continue
		}
		total += stat.TotalMinutes
	}
	return total, nil
}

// ListRange returns the aggregates over [from, to], oldest first.
func (r *DailyStatRepo) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.DailyStat, 0)
	for _, stat := range r.store.stats {
		if stat.UserID != userID {
			continue
		}
		if stat.Date.Before(from) || stat.Date.After(to) {
			continue
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListRecent returns worked days at or after the cutoff, newest first.
// Zero-minute rows are skipped so they cannot extend a streak.
func (r *DailyStatRepo) ListRecent(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]domain.DailyStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.DailyStat, 0)
	for _, stat := range r.store.stats {
		if stat.UserID != userID || stat.TotalMinutes <= 0 {
			continue
		}
		if stat.Date.Before(cutoff) {
			continue
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ReplaceAll swaps the user's aggregates for the rebuilt set.
func (r *DailyStatRepo) ReplaceAll(ctx context.Context, userID uuid.UUID, stats []domain.DailyStat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for key, stat := range r.store.stats {
		if stat.UserID == userID {
			delete(r.store.stats, key)
		}
	}
	for _, stat := range stats {
		r.store.stats[statKey{user: userID, date: dateKey(stat.Date)}] = stat
	}
	return nil
}

// GoalRepo implements the weekly goal repository over the shared store.
type GoalRepo struct {
	store *Store
}

// Get returns the goal for the week or ErrNotFound.
func (r *GoalRepo) Get(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	goal, ok := r.store.goals[goalKey{user: userID, week: dateKey(weekStart)}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := goal
	return &out, nil
}

// Upsert inserts or replaces the week's goal.
func (r *GoalRepo) Upsert(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := *goal
	row.UpdatedAt = time.Now().UTC()
	r.store.goals[goalKey{user: row.UserID, week: dateKey(row.WeekStart)}] = row

	out := row
	return &out, nil
}

// DeleteAllByUser removes every goal the user set.
func (r *GoalRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for key, goal := range r.store.goals {
		if goal.UserID == userID {
			delete(r.store.goals, key)
		}
	}
	return nil
}
