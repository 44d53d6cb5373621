package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the referenced account does not exist.
	ErrAccountNotFound = errors.New("user not found")
	// ErrAccountExists indicates that an account with the same email is already registered.
	ErrAccountExists = errors.New("user already exists")
	// ErrInvalidAccountID indicates that no account identifier was supplied.
	ErrInvalidAccountID = errors.New("email is required")
	// ErrDuplicateCheckIn indicates that a workout was already logged for the current UTC day.
	ErrDuplicateCheckIn = errors.New("workout already logged today")
	// ErrCheckInConflict is returned by a WorkoutLogRepository when an insert
	// loses a race against another insert for the same account and day.
	ErrCheckInConflict = errors.New("workout log conflict")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageUnavailable indicates that the backing store could not serve the request.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
