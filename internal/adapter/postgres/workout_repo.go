package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitlog/internal/domain"
)

var _ domain.WorkoutLogRepository = (*DB)(nil)

// FindWorkoutOnDay returns the account's first entry on the UTC date of day.
func (d *DB) FindWorkoutOnDay(ctx context.Context, accountID string, day time.Time) (*domain.WorkoutLogEntry, error) {
	dayStart := domain.CalendarDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var e domain.WorkoutLogEntry
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, account_id, logged_at FROM workout_logs WHERE account_id=$1 AND logged_at >= $2 AND logged_at < $3 ORDER BY logged_at LIMIT 1;",
		accountID, dayStart, dayEnd,
	).Scan(&e.ID, &e.AccountID, &e.LoggedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.LoggedAt = e.LoggedAt.UTC()
	return &e, nil
}

// InsertWorkout re-checks the day and inserts inside one transaction. The
// unique (account_id, logged_on) constraint settles races between
// transactions: the loser inserts nothing and gets ErrCheckInConflict.
func (d *DB) InsertWorkout(ctx context.Context, accountID string, loggedAt time.Time) (*domain.WorkoutLogEntry, error) {
	e := domain.WorkoutLogEntry{AccountID: accountID, LoggedAt: loggedAt.UTC()}
	loggedOn := domain.CalendarDay(e.LoggedAt).Format("2006-01-02")

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM workout_logs WHERE account_id=$1 AND logged_on=$2);",
			accountID, loggedOn,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrCheckInConflict
		}

		err := tx.QueryRowContext(ctx,
			"INSERT INTO workout_logs(account_id, logged_at, logged_on) VALUES($1, $2, $3) ON CONFLICT (account_id, logged_on) DO NOTHING RETURNING id;",
			accountID, e.LoggedAt, loggedOn,
		).Scan(&e.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCheckInConflict
		}
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCheckInConflict
		}
		return nil, err
	}
	return &e, nil
}

// CountWorkoutDays counts distinct UTC dates with an entry in [start, end).
// The date is derived from logged_at so rows written outside InsertWorkout
// are counted correctly too.
func (d *DB) CountWorkoutDays(ctx context.Context, accountID string, start, end time.Time) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT (logged_at AT TIME ZONE 'UTC')::date) FROM workout_logs WHERE account_id=$1 AND logged_at >= $2 AND logged_at < $3;",
		accountID, start.UTC(), end.UTC(),
	).Scan(&n)
	return n, err
}

// ListWorkoutsInWindow returns the account's entries in [start, end), oldest first.
func (d *DB) ListWorkoutsInWindow(ctx context.Context, accountID string, start, end time.Time) ([]domain.WorkoutLogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, account_id, logged_at FROM workout_logs WHERE account_id=$1 AND logged_at >= $2 AND logged_at < $3 ORDER BY logged_at;",
		accountID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.WorkoutLogEntry
	for rows.Next() {
		var e domain.WorkoutLogEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.LoggedAt); err != nil {
			return nil, err
		}
		e.LoggedAt = e.LoggedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteWorkoutsForAccount removes every entry of the account.
func (d *DB) DeleteWorkoutsForAccount(ctx context.Context, accountID string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM workout_logs WHERE account_id=$1;", accountID)
	return err
}
