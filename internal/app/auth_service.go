// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitlog/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

const minPasswordLen = 8

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrWeakPassword indicates that a registration password is too short.
	ErrWeakPassword = fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
)

// AuthService handles registration, authentication, sessions and account deletion.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	workouts domain.WorkoutLogRepository
	legacy   domain.LegacyProgressRepository
}

// NewAuthService creates a new authentication service. legacy may be nil.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, workouts domain.WorkoutLogRepository, legacy domain.LegacyProgressRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		workouts: workouts,
		legacy:   legacy,
	}
}

// Register creates a password account. The display name starts out as name.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidAccountID
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	existing, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.accounts.CreateAccount(ctx, strings.TrimSpace(name), email, string(hash))
}

// Login authenticates an account and creates a session.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ip string) (string, *domain.Account, error) {
	acct, err := s.accounts.GetAccountByEmail(ctx, normalizeEmail(email))
	if err != nil || acct == nil || acct.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, acct.ID, userAgent, ip)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks that a session token is valid and was issued to the same user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.Account, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) || session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	acct, err := s.accounts.GetAccountByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrSessionNotFound
	}
	return acct, nil
}

// ValidateForwardAuth resolves the account named by a trusted proxy's
// Remote-User header, provisioning it on first sight.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.Account, error) {
	if remoteUser == "" {
		return nil, ErrSessionNotFound
	}
	return s.provision(ctx, remoteUser, "")
}

// LoginWithUser creates a session for an already authenticated identity (e.g. via SSO).
func (s *AuthService) LoginWithUser(ctx context.Context, email, name, userAgent, ip string) (string, error) {
	acct, err := s.provision(ctx, email, name)
	if err != nil {
		return "", err
	}
	return s.startSession(ctx, acct.ID, userAgent, ip)
}

// DeleteAccount removes the account and everything owned by it. Workout logs
// go first so a failure never leaves logs without an owner.
func (s *AuthService) DeleteAccount(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if acct == nil {
		return domain.ErrAccountNotFound
	}

	if err := s.workouts.DeleteWorkoutsForAccount(ctx, acct.Email); err != nil {
		return fmt.Errorf("delete workouts: %w", err)
	}
	if s.legacy != nil {
		if err := s.legacy.DeleteCardioProgress(ctx, acct.Email); err != nil {
			return fmt.Errorf("delete cardio progress: %w", err)
		}
	}
	return s.accounts.DeleteAccount(ctx, acct.Email)
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) provision(ctx context.Context, email, name string) (*domain.Account, error) {
	email = normalizeEmail(email)
	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return acct, nil
	}
	if name == "" {
		name = email
	}
	// SSO accounts carry no password hash and cannot use password login.
	acct, err = s.accounts.CreateAccount(ctx, name, email, "")
	if errors.Is(err, domain.ErrAccountExists) {
		// Lost a race with a concurrent first login.
		return s.accounts.GetAccountByEmail(ctx, email)
	}
	return acct, err
}

func (s *AuthService) startSession(ctx context.Context, accountID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, accountID, token, userAgent, ip, time.Now().Add(SessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// Emails are matched exactly, as the mobile client has always sent them.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
