package app

import (
	"context"

	"fitlog/internal/domain"
)

// LegacyProgressService serves the cardio step-counter record that older
// mobile builds still poll. The data is not durable; it can be removed
// together with its repository without touching ProgressService.
type LegacyProgressService struct {
	repo domain.LegacyProgressRepository
}

// NewLegacyProgressService creates a LegacyProgressService.
func NewLegacyProgressService(repo domain.LegacyProgressRepository) *LegacyProgressService {
	return &LegacyProgressService{repo: repo}
}

// Get returns the cardio record for accountID, creating the default one on first access.
func (s *LegacyProgressService) Get(ctx context.Context, accountID string) (domain.CardioProgress, error) {
	if accountID == "" {
		return domain.CardioProgress{}, domain.ErrInvalidAccountID
	}
	return s.repo.CardioProgress(ctx, accountID)
}
