package stats

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

var _ dailyStatRepo = &dailyStatRepoMock{}

type dailyStatRepoMock struct {
	GetFunc        func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStat, error)
	SumRangeFunc   func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	ListRangeFunc  func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyStat, error)
	ListRecentFunc func(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]domain.DailyStat, error)

	calls struct {
		Get []struct {
			UserID uuid.UUID
			Date   time.Time
		}
		SumRange []struct {
			UserID uuid.UUID
			From   time.Time
			To     time.Time
		}
		ListRange []struct {
			UserID uuid.UUID
			From   time.Time
			To     time.Time
		}
		ListRecent []struct {
			UserID uuid.UUID
			Cutoff time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *dailyStatRepoMock) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStat, error) {
	if mock.GetFunc == nil {
		panic("dailyStatRepoMock.GetFunc: method is nil but dailyStatRepo.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		UserID uuid.UUID
		Date   time.Time
	}{userID, date})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, userID, date)
}

func (mock *dailyStatRepoMock) GetCalls() []struct {
	UserID uuid.UUID
	Date   time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Get
}

func (mock *dailyStatRepoMock) SumRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	if mock.SumRangeFunc == nil {
		panic("dailyStatRepoMock.SumRangeFunc: method is nil but dailyStatRepo.SumRange was just called")
	}
	mock.lock.Lock()
	mock.calls.SumRange = append(mock.calls.SumRange, struct {
		UserID uuid.UUID
		From   time.Time
		To     time.Time
	}{userID, from, to})
	mock.lock.Unlock()
	return mock.SumRangeFunc(ctx, userID, from, to)
}

func (mock *dailyStatRepoMock) SumRangeCalls() []struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SumRange
}

func (mock *dailyStatRepoMock) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyStat, error) {
	if mock.ListRangeFunc == nil {
		panic("dailyStatRepoMock.ListRangeFunc: method is nil but dailyStatRepo.ListRange was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRange = append(mock.calls.ListRange, struct {
		UserID uuid.UUID
		From   time.Time
		To     time.Time
	}{userID, from, to})
	mock.lock.Unlock()
	return mock.ListRangeFunc(ctx, userID, from, to)
}

func (mock *dailyStatRepoMock) ListRangeCalls() []struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRange
}

func (mock *dailyStatRepoMock) ListRecent(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]domain.DailyStat, error) {
	if mock.ListRecentFunc == nil {
		panic("dailyStatRepoMock.ListRecentFunc: method is nil but dailyStatRepo.ListRecent was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, struct {
		UserID uuid.UUID
		Cutoff time.Time
	}{userID, cutoff})
	mock.lock.Unlock()
	return mock.ListRecentFunc(ctx, userID, cutoff)
}

func (mock *dailyStatRepoMock) ListRecentCalls() []struct {
	UserID uuid.UUID
	Cutoff time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRecent
}

var _ goalRepo = &goalRepoMock{}

type goalRepoMock struct {
	GetFunc    func(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error)
	UpsertFunc func(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error)

	calls struct {
		Get []struct {
			UserID    uuid.UUID
			WeekStart time.Time
		}
		Upsert []struct {
			Goal *domain.WeeklyGoal
		}
	}
	lock sync.RWMutex
}

func (mock *goalRepoMock) Get(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyGoal, error) {
	if mock.GetFunc == nil {
		panic("goalRepoMock.GetFunc: method is nil but goalRepo.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		UserID    uuid.UUID
		WeekStart time.Time
	}{userID, weekStart})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, userID, weekStart)
}

func (mock *goalRepoMock) GetCalls() []struct {
	UserID    uuid.UUID
	WeekStart time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Get
}

func (mock *goalRepoMock) Upsert(ctx context.Context, goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	if mock.UpsertFunc == nil {
		panic("goalRepoMock.UpsertFunc: method is nil but goalRepo.Upsert was just called")
	}
	mock.lock.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct {
		Goal *domain.WeeklyGoal
	}{goal})
	mock.lock.Unlock()
	return mock.UpsertFunc(ctx, goal)
}

func (mock *goalRepoMock) UpsertCalls() []struct {
	Goal *domain.WeeklyGoal
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Upsert
}

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	GetActiveFunc func(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	GetRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error)

	calls struct {
		GetActive []struct {
			UserID uuid.UUID
		}
		GetRecent []struct {
			UserID uuid.UUID
			Limit  int
		}
	}
	lock sync.RWMutex
}

func (mock *sessionRepoMock) GetActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	if mock.GetActiveFunc == nil {
		panic("sessionRepoMock.GetActiveFunc: method is nil but sessionRepo.GetActive was just called")
	}
	mock.lock.Lock()
	mock.calls.GetActive = append(mock.calls.GetActive, struct {
		UserID uuid.UUID
	}{userID})
	mock.lock.Unlock()
	return mock.GetActiveFunc(ctx, userID)
}

func (mock *sessionRepoMock) GetActiveCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetActive
}

func (mock *sessionRepoMock) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error) {
	if mock.GetRecentFunc == nil {
		panic("sessionRepoMock.GetRecentFunc: method is nil but sessionRepo.GetRecent was just called")
	}
	mock.lock.Lock()
	mock.calls.GetRecent = append(mock.calls.GetRecent, struct {
		UserID uuid.UUID
		Limit  int
	}{userID, limit})
	mock.lock.Unlock()
	return mock.GetRecentFunc(ctx, userID, limit)
}

func (mock *sessionRepoMock) GetRecentCalls() []struct {
	UserID uuid.UUID
	Limit  int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetRecent
}

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetSettingsFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	calls struct {
		GetSettings []struct {
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *settingsRepoMock) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if mock.GetSettingsFunc == nil {
		panic("settingsRepoMock.GetSettingsFunc: method is nil but settingsRepo.GetSettings was just called")
	}
	mock.lock.Lock()
	mock.calls.GetSettings = append(mock.calls.GetSettings, struct {
		UserID uuid.UUID
	}{userID})
	mock.lock.Unlock()
	return mock.GetSettingsFunc(ctx, userID)
}

func (mock *settingsRepoMock) GetSettingsCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetSettings
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func utcSettings() *settingsRepoMock {
	return &settingsRepoMock{
		GetSettingsFunc: func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
			return &domain.UserSettings{UserID: userID, Timezone: "UTC"}, nil
		},
	}
}

func noActiveSession() *sessionRepoMock {
	return &sessionRepoMock{
		GetActiveFunc: func(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
			return nil, domain.ErrNotFound
		},
	}
}
