package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitlog/internal/domain"
)

var (
	_ domain.AccountRepository = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

const accountColumns = "id, email, name, display_name, password_hash, age, gender, height, weight, target_weight, avatar_url, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.DisplayName, &a.PasswordHash,
		&a.Age, &a.Gender, &a.Height, &a.Weight, &a.TargetWeight, &a.AvatarURL, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByEmail retrieves an account by email.
func (d *DB) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1", email))
}

// GetAccountByID retrieves an account by ID.
func (d *DB) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1", id))
}

// CreateAccount creates a new account with the display name set to name.
func (d *DB) CreateAccount(ctx context.Context, name, email, passwordHash string) (*domain.Account, error) {
	a, err := scanAccount(d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (email, name, display_name, password_hash, created_at) VALUES ($1, $2, $2, $3, $4) RETURNING "+accountColumns,
		email, name, passwordHash, time.Now().UTC(),
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrAccountExists
	}
	return a, err
}

// UpdateProfile overwrites the profile columns. A nil display name keeps the
// stored one. Returns (nil, nil) when no account has the email.
func (d *DB) UpdateProfile(ctx context.Context, email string, p domain.ProfileFields) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"UPDATE accounts SET display_name = COALESCE($2, display_name), age = $3, gender = $4, height = $5, weight = $6, target_weight = $7, avatar_url = $8 WHERE email = $1 RETURNING "+accountColumns,
		email, p.DisplayName, p.Age, p.Gender, p.Height, p.Weight, p.TargetWeight, p.AvatarURL,
	))
}

// DeleteAccount removes the account; its sessions cascade.
func (d *DB) DeleteAccount(ctx context.Context, email string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM accounts WHERE email = $1", email)
	return err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (account_id, token, user_agent, ip, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		accountID, token, userAgent, ip, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, account_id, user_agent, ip, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.AccountID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
