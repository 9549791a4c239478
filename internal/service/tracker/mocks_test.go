package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	GetByIDFunc     func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error)
	GetActiveFunc   func(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	GetRecentFunc   func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WorkSession, error)
	GetHistoryFunc  func(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]*domain.WorkSession, int, error)
	CreateFunc      func(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	CompleteFunc    func(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time, durationMinutes int) (*domain.WorkSession, error)
	CancelFunc      func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error)
	DeleteFunc      func(ctx context.Context, userID, sessionID uuid.UUID) error
	UpdateNotesFunc func(ctx context.Context, userID, sessionID uuid.UUID, notes string) (*domain.WorkSession, error)

	calls struct {
		GetByID []struct {
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
		GetActive []struct {
			UserID uuid.UUID
		}
		GetRecent []struct {
			UserID uuid.UUID
			Limit  int
		}
		GetHistory []struct {
			UserID uuid.UUID
			Filter domain.SessionFilter
		}
		Create []struct {
			Session *domain.WorkSession
		}
		Complete []struct {
			UserID          uuid.UUID
			SessionID       uuid.UUID
			EndedAt         time.Time
			DurationMinutes int
		}
		Cancel []struct {
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
		Delete []struct {
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
		UpdateNotes []struct {
			UserID    uuid.UUID
			SessionID uuid.UUID
			Notes     string
		}
	}
	lock sync.RWMutex
}

func (mock *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	if mock.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but sessionRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{userID, sessionID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) GetByIDCalls() []struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
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

func (mock *sessionRepoMock) GetHistory(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]*domain.WorkSession, int, error) {
	if mock.GetHistoryFunc == nil {
		panic("sessionRepoMock.GetHistoryFunc: method is nil but sessionRepo.GetHistory was just called")
	}
	mock.lock.Lock()
	mock.calls.GetHistory = append(mock.calls.GetHistory, struct {
		UserID uuid.UUID
		Filter domain.SessionFilter
	}{userID, filter})
	mock.lock.Unlock()
	return mock.GetHistoryFunc(ctx, userID, filter)
}

func (mock *sessionRepoMock) GetHistoryCalls() []struct {
	UserID uuid.UUID
	Filter domain.SessionFilter
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetHistory
}

func (mock *sessionRepoMock) Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Session *domain.WorkSession
	}{session})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, session)
}

func (mock *sessionRepoMock) CreateCalls() []struct {
	Session *domain.WorkSession
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *sessionRepoMock) Complete(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time, durationMinutes int) (*domain.WorkSession, error) {
	if mock.CompleteFunc == nil {
		panic("sessionRepoMock.CompleteFunc: method is nil but sessionRepo.Complete was just called")
	}
	mock.lock.Lock()
	mock.calls.Complete = append(mock.calls.Complete, struct {
		UserID          uuid.UUID
		SessionID       uuid.UUID
		EndedAt         time.Time
		DurationMinutes int
	}{userID, sessionID, endedAt, durationMinutes})
	mock.lock.Unlock()
	return mock.CompleteFunc(ctx, userID, sessionID, endedAt, durationMinutes)
}

func (mock *sessionRepoMock) CompleteCalls() []struct {
	UserID          uuid.UUID
	SessionID       uuid.UUID
	EndedAt         time.Time
	DurationMinutes int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Complete
}

func (mock *sessionRepoMock) Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	if mock.CancelFunc == nil {
		panic("sessionRepoMock.CancelFunc: method is nil but sessionRepo.Cancel was just called")
	}
	mock.lock.Lock()
	mock.calls.Cancel = append(mock.calls.Cancel, struct {
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{userID, sessionID})
	mock.lock.Unlock()
	return mock.CancelFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) CancelCalls() []struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Cancel
}

func (mock *sessionRepoMock) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("sessionRepoMock.DeleteFunc: method is nil but sessionRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{userID, sessionID})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) DeleteCalls() []struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *sessionRepoMock) UpdateNotes(ctx context.Context, userID, sessionID uuid.UUID, notes string) (*domain.WorkSession, error) {
	if mock.UpdateNotesFunc == nil {
		panic("sessionRepoMock.UpdateNotesFunc: method is nil but sessionRepo.UpdateNotes was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateNotes = append(mock.calls.UpdateNotes, struct {
		UserID    uuid.UUID
		SessionID uuid.UUID
		Notes     string
	}{userID, sessionID, notes})
	mock.lock.Unlock()
	return mock.UpdateNotesFunc(ctx, userID, sessionID, notes)
}

func (mock *sessionRepoMock) UpdateNotesCalls() []struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Notes     string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateNotes
}

var _ projectRepo = &projectRepoMock{}

type projectRepoMock struct {
	GetByIDFunc    func(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	GetDefaultFunc func(ctx context.Context, userID uuid.UUID) (*domain.Project, error)

	calls struct {
		GetByID []struct {
			UserID    uuid.UUID
			ProjectID uuid.UUID
		}
		GetDefault []struct {
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *projectRepoMock) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	if mock.GetByIDFunc == nil {
		panic("projectRepoMock.GetByIDFunc: method is nil but projectRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		UserID    uuid.UUID
		ProjectID uuid.UUID
	}{userID, projectID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, userID, projectID)
}

func (mock *projectRepoMock) GetByIDCalls() []struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *projectRepoMock) GetDefault(ctx context.Context, userID uuid.UUID) (*domain.Project, error) {
	if mock.GetDefaultFunc == nil {
		panic("projectRepoMock.GetDefaultFunc: method is nil but projectRepo.GetDefault was just called")
	}
	mock.lock.Lock()
	mock.calls.GetDefault = append(mock.calls.GetDefault, struct {
		UserID uuid.UUID
	}{userID})
	mock.lock.Unlock()
	return mock.GetDefaultFunc(ctx, userID)
}

func (mock *projectRepoMock) GetDefaultCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetDefault
}

var _ dailyStatRepo = &dailyStatRepoMock{}

type dailyStatRepoMock struct {
	AddSessionFunc func(ctx context.Context, userID uuid.UUID, date time.Time, minutes int) error

	calls struct {
		AddSession []struct {
			UserID  uuid.UUID
			Date    time.Time
			Minutes int
		}
	}
	lock sync.RWMutex
}

func (mock *dailyStatRepoMock) AddSession(ctx context.Context, userID uuid.UUID, date time.Time, minutes int) error {
	if mock.AddSessionFunc == nil {
		panic("dailyStatRepoMock.AddSessionFunc: method is nil but dailyStatRepo.AddSession was just called")
	}
	mock.lock.Lock()
	mock.calls.AddSession = append(mock.calls.AddSession, struct {
		UserID  uuid.UUID
		Date    time.Time
		Minutes int
	}{userID, date, minutes})
	mock.lock.Unlock()
	return mock.AddSessionFunc(ctx, userID, date, minutes)
}

func (mock *dailyStatRepoMock) AddSessionCalls() []struct {
	UserID  uuid.UUID
	Date    time.Time
	Minutes int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AddSession
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

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
