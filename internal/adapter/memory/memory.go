// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitlog/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	workouts []domain.WorkoutLogEntry
	accounts []*domain.Account
	sessions map[string]*domain.Session

	workoutIDCounter int64
	accountIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.WorkoutLogRepository = (*DB)(nil)
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error {
	return nil
}

// --- WorkoutLogRepository ---

// FindWorkoutOnDay returns the account's entry on the UTC date of day, if any.
func (db *DB) FindWorkoutOnDay(ctx context.Context, accountID string, day time.Time) (*domain.WorkoutLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e := db.findOnDayLocked(accountID, day); e != nil {
		ret := *e
		return &ret, nil
	}
	return nil, nil
}

func (db *DB) findOnDayLocked(accountID string, day time.Time) *domain.WorkoutLogEntry {
	dayStart := domain.CalendarDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	for i := range db.workouts {
		w := &db.workouts[i]
		if w.AccountID == accountID && !w.LoggedAt.Before(dayStart) && w.LoggedAt.Before(dayEnd) {
			return w
		}
	}
	return nil
}

// InsertWorkout appends an entry. The same-day check runs under the same
// lock as the append, so concurrent inserts cannot both succeed.
func (db *DB) InsertWorkout(ctx context.Context, accountID string, loggedAt time.Time) (*domain.WorkoutLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.findOnDayLocked(accountID, loggedAt) != nil {
		return nil, domain.ErrCheckInConflict
	}

	db.workoutIDCounter++
	entry := domain.WorkoutLogEntry{
		ID:        db.workoutIDCounter,
		AccountID: accountID,
		LoggedAt:  loggedAt.UTC(),
	}
	db.workouts = append(db.workouts, entry)
	return &entry, nil
}

// CountWorkoutDays counts distinct UTC dates with an entry in [start, end).
func (db *DB) CountWorkoutDays(ctx context.Context, accountID string, start, end time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	days := make(map[time.Time]struct{})
	for _, w := range db.workouts {
		if w.AccountID == accountID && !w.LoggedAt.Before(start) && w.LoggedAt.Before(end) {
			days[domain.CalendarDay(w.LoggedAt)] = struct{}{}
		}
	}
	return len(days), nil
}

// ListWorkoutsInWindow returns the account's entries in [start, end), oldest first.
func (db *DB) ListWorkoutsInWindow(ctx context.Context, accountID string, start, end time.Time) ([]domain.WorkoutLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WorkoutLogEntry
	for _, w := range db.workouts {
		if w.AccountID == accountID && !w.LoggedAt.Before(start) && w.LoggedAt.Before(end) {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})
	return result, nil
}

// DeleteWorkoutsForAccount removes every entry of the account.
func (db *DB) DeleteWorkoutsForAccount(ctx context.Context, accountID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.workouts[:0]
	for _, w := range db.workouts {
		if w.AccountID != accountID {
			kept = append(kept, w)
		}
	}
	db.workouts = kept
	return nil
}

// --- AccountRepository ---

// GetAccountByEmail retrieves an account by email.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			ret := *a
			return &ret, nil
		}
	}
	return nil, nil
}

// GetAccountByID retrieves an account by ID.
func (db *DB) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			ret := *a
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateAccount creates a new account.
func (db *DB) CreateAccount(ctx context.Context, name, email, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			return nil, domain.ErrAccountExists
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Email:        email,
		Name:         name,
		DisplayName:  name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.accounts = append(db.accounts, a)
	ret := *a
	return &ret, nil
}

// UpdateProfile overwrites the profile fields of an account. It returns
// (nil, nil) when no account has the email.
func (db *DB) UpdateProfile(ctx context.Context, email string, p domain.ProfileFields) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email != email {
			continue
		}
		if p.DisplayName != nil {
			a.DisplayName = *p.DisplayName
		}
		age, height, weight, target := p.Age, p.Height, p.Weight, p.TargetWeight
		a.Age = &age
		a.Height = &height
		a.Weight = &weight
		a.TargetWeight = &target
		a.Gender = p.Gender
		a.AvatarURL = p.AvatarURL
		ret := *a
		return &ret, nil
	}
	return nil, nil
}

// DeleteAccount removes the account and its sessions.
func (db *DB) DeleteAccount(ctx context.Context, email string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, a := range db.accounts {
		if a.Email != email {
			continue
		}
		for token, s := range db.sessions {
			if s.AccountID == a.ID {
				delete(db.sessions, token)
			}
		}
		db.accounts = append(db.accounts[:i], db.accounts[i+1:]...)
		return nil
	}
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		ret := *s
		return &ret, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
