package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fitlog/internal/domain"
	"fitlog/internal/observability"
)

// ProgressService answers whether an account worked out today, this week,
// and on which days of this week. It owns the one-check-in-per-day rule.
type ProgressService struct {
	logs     domain.WorkoutLogRepository
	accounts domain.AccountRepository
	log      *slog.Logger
}

// NewProgressService creates a ProgressService backed by the given repositories.
func NewProgressService(logs domain.WorkoutLogRepository, accounts domain.AccountRepository, logger *slog.Logger) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{logs: logs, accounts: accounts, log: logger}
}

// CheckIn records a workout for accountID at now unless one already exists
// for now's UTC date, in which case it returns domain.ErrDuplicateCheckIn.
func (s *ProgressService) CheckIn(ctx context.Context, accountID string, now time.Time) error {
	err := s.checkIn(ctx, accountID, now)
	switch {
	case err == nil:
		observability.RecordCheckIn(observability.CheckInLogged)
	case errors.Is(err, domain.ErrDuplicateCheckIn):
		observability.RecordCheckIn(observability.CheckInDuplicate)
		s.log.WarnContext(ctx, "duplicate check-in rejected", "account", accountID)
	default:
		observability.RecordCheckIn(observability.CheckInError)
	}
	return err
}

func (s *ProgressService) checkIn(ctx context.Context, accountID string, now time.Time) error {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return err
	}

	existing, err := s.logs.FindWorkoutOnDay(ctx, accountID, domain.CalendarDay(now))
	if err != nil {
		return s.storageErr(ctx, "find workout", err)
	}
	if existing != nil {
		return domain.ErrDuplicateCheckIn
	}

	if _, err := s.logs.InsertWorkout(ctx, accountID, now.UTC()); err != nil {
		if errors.Is(err, domain.ErrCheckInConflict) {
			return domain.ErrDuplicateCheckIn
		}
		return s.storageErr(ctx, "insert workout", err)
	}
	return nil
}

// WeeklySummary returns the number of distinct days with a workout in the
// week containing now.
func (s *ProgressService) WeeklySummary(ctx context.Context, accountID string, now time.Time) (domain.WeeklySummary, error) {
	summary, err := s.weeklySummary(ctx, accountID, now)
	observability.RecordProgressQuery("weekly_summary", err)
	return summary, err
}

func (s *ProgressService) weeklySummary(ctx context.Context, accountID string, now time.Time) (domain.WeeklySummary, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return domain.WeeklySummary{}, err
	}
	w := domain.CurrentWeekWindow(now)
	count, err := s.logs.CountWorkoutDays(ctx, accountID, w.Start, w.End)
	if err != nil {
		return domain.WeeklySummary{}, s.storageErr(ctx, "count workout days", err)
	}
	return domain.WeeklySummary{WeeklyWorkouts: count, WeeklyGoal: domain.WeeklyGoal}, nil
}

// DailyCheckins returns, for each day of the week containing now, whether a
// workout was logged on it.
func (s *ProgressService) DailyCheckins(ctx context.Context, accountID string, now time.Time) (domain.DailyCheckins, error) {
	days, err := s.dailyCheckins(ctx, accountID, now)
	observability.RecordProgressQuery("daily_checkins", err)
	return days, err
}

func (s *ProgressService) dailyCheckins(ctx context.Context, accountID string, now time.Time) (domain.DailyCheckins, error) {
	var days domain.DailyCheckins
	if err := s.requireAccount(ctx, accountID); err != nil {
		return days, err
	}
	w := domain.CurrentWeekWindow(now)
	entries, err := s.logs.ListWorkoutsInWindow(ctx, accountID, w.Start, w.End)
	if err != nil {
		return domain.DailyCheckins{}, s.storageErr(ctx, "list workouts", err)
	}
	for _, e := range entries {
		if !w.Contains(e.LoggedAt) {
			continue
		}
		days.Mark(domain.WeekdayKey(e.LoggedAt))
	}
	return days, nil
}

func (s *ProgressService) requireAccount(ctx context.Context, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return domain.ErrInvalidAccountID
	}
	acct, err := s.accounts.GetAccountByEmail(ctx, accountID)
	if err != nil {
		return s.storageErr(ctx, "get account", err)
	}
	if acct == nil {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (s *ProgressService) storageErr(ctx context.Context, op string, err error) error {
	s.log.ErrorContext(ctx, "workout store failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}
