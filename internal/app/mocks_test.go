package app

import (
	"context"
	"errors"
	"time"

	"fitlog/internal/domain"
)

type mockAccountRepo struct {
	getByEmailFn    func(ctx context.Context, email string) (*domain.Account, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.Account, error)
	createFn        func(ctx context.Context, name, email, passwordHash string) (*domain.Account, error)
	updateProfileFn func(ctx context.Context, email string, p domain.ProfileFields) (*domain.Account, error)
	deleteFn        func(ctx context.Context, email string) error
}

func (m *mockAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, name, email, passwordHash string) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, email, passwordHash)
	}
	return &domain.Account{ID: 1, Name: name, DisplayName: name, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockAccountRepo) UpdateProfile(ctx context.Context, email string, p domain.ProfileFields) (*domain.Account, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, email, p)
	}
	return nil, nil
}

func (m *mockAccountRepo) DeleteAccount(ctx context.Context, email string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockWorkoutRepo struct {
	findOnDayFn func(ctx context.Context, accountID string, day time.Time) (*domain.WorkoutLogEntry, error)
	insertFn    func(ctx context.Context, accountID string, loggedAt time.Time) (*domain.WorkoutLogEntry, error)
	countFn     func(ctx context.Context, accountID string, start, end time.Time) (int, error)
	listFn      func(ctx context.Context, accountID string, start, end time.Time) ([]domain.WorkoutLogEntry, error)
	deleteFn    func(ctx context.Context, accountID string) error
}

func (m *mockWorkoutRepo) FindWorkoutOnDay(ctx context.Context, accountID string, day time.Time) (*domain.WorkoutLogEntry, error) {
	if m.findOnDayFn != nil {
		return m.findOnDayFn(ctx, accountID, day)
	}
	return nil, nil
}

func (m *mockWorkoutRepo) InsertWorkout(ctx context.Context, accountID string, loggedAt time.Time) (*domain.WorkoutLogEntry, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, accountID, loggedAt)
	}
	return &domain.WorkoutLogEntry{ID: 1, AccountID: accountID, LoggedAt: loggedAt}, nil
}

func (m *mockWorkoutRepo) CountWorkoutDays(ctx context.Context, accountID string, start, end time.Time) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, accountID, start, end)
	}
	return 0, nil
}

func (m *mockWorkoutRepo) ListWorkoutsInWindow(ctx context.Context, accountID string, start, end time.Time) ([]domain.WorkoutLogEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID, start, end)
	}
	return nil, nil
}

func (m *mockWorkoutRepo) DeleteWorkoutsForAccount(ctx context.Context, accountID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID)
	}
	return nil
}

type mockLegacyRepo struct {
	progressFn func(ctx context.Context, accountID string) (domain.CardioProgress, error)
	deleteFn   func(ctx context.Context, accountID string) error
}

func (m *mockLegacyRepo) CardioProgress(ctx context.Context, accountID string) (domain.CardioProgress, error) {
	if m.progressFn != nil {
		return m.progressFn(ctx, accountID)
	}
	return domain.CardioProgress{}, nil
}

func (m *mockLegacyRepo) DeleteCardioProgress(ctx context.Context, accountID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID)
	}
	return nil
}

var errBoom = errors.New("boom")

// existingAccounts answers GetAccountByEmail with an account for every email.
func existingAccounts() *mockAccountRepo {
	return &mockAccountRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Account, error) {
			return &domain.Account{ID: 1, Email: email}, nil
		},
	}
}
