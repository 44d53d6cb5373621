package domain

import "context"

// CardioProgress is the step-counter record the older mobile client still
// reads from GET /progress. It is not persisted.
type CardioProgress struct {
	WeeklySteps [7]int  `json:"weekly_steps"`
	DailySteps  int     `json:"daily_steps"`
	TotalRuns   int     `json:"total_runs"`
	BestRunKm   float64 `json:"best_run_km"`
}

// LegacyProgressRepository is the port for legacy cardio progress.
// CardioProgress creates the zero record on first access.
type LegacyProgressRepository interface {
	CardioProgress(ctx context.Context, accountID string) (CardioProgress, error)
	DeleteCardioProgress(ctx context.Context, accountID string) error
}
