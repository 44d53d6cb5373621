package domain

import (
	"context"
	"time"
)

// WeeklyGoal is the number of workout days per week the client measures progress against.
const WeeklyGoal = 5

// WorkoutLogEntry is a single workout check-in.
type WorkoutLogEntry struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"accountId"`
	LoggedAt  time.Time `json:"loggedAt"`
}

// WorkoutLogRepository is the port for workout log persistence.
//
// Days and windows are UTC. FindWorkoutOnDay returns (nil, nil) when the
// account has no entry on that day. InsertWorkout must be atomic with respect
// to the one-entry-per-day rule and returns ErrCheckInConflict when another
// entry for the same day already exists.
type WorkoutLogRepository interface {
	FindWorkoutOnDay(ctx context.Context, accountID string, day time.Time) (*WorkoutLogEntry, error)
	InsertWorkout(ctx context.Context, accountID string, loggedAt time.Time) (*WorkoutLogEntry, error)
	CountWorkoutDays(ctx context.Context, accountID string, start, end time.Time) (int, error)
	ListWorkoutsInWindow(ctx context.Context, accountID string, start, end time.Time) ([]WorkoutLogEntry, error)
	DeleteWorkoutsForAccount(ctx context.Context, accountID string) error
}

// WeeklySummary is the weekly workout count measured against the goal.
type WeeklySummary struct {
	WeeklyWorkouts int `json:"weekly_workouts"`
	WeeklyGoal     int `json:"weekly_goal"`
}
