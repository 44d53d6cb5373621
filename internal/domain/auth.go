// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account is a registered user. The email is the account identifier used
// across the API; profile attributes stay nil until the user fills them in.
type Account struct {
	ID           int64
	Email        string
	Name         string
	DisplayName  string
	PasswordHash string
	Age          *int
	Gender       *string
	Height       *float64
	Weight       *float64
	TargetWeight *float64
	AvatarURL    *string
	CreatedAt    time.Time
}

// Session represents an active login.
type Session struct {
	Token     string
	AccountID int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ProfileFields is the mutable part of an account.
type ProfileFields struct {
	DisplayName  *string
	Age          int
	Gender       *string
	Height       float64
	Weight       float64
	TargetWeight float64
	AvatarURL    *string
}

// AccountRepository defines the port for account persistence operations.
// Lookups return (nil, nil) when the account does not exist.
type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	CreateAccount(ctx context.Context, name, email, passwordHash string) (*Account, error)
	UpdateProfile(ctx context.Context, email string, p ProfileFields) (*Account, error)
	DeleteAccount(ctx context.Context, email string) error
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
