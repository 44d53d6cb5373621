package memory

import (
	"context"
	"sync"

	"fitlog/internal/domain"
)

var _ domain.LegacyProgressRepository = (*LegacyCardioStore)(nil)

// LegacyCardioStore keeps cardio progress in process memory only. Records
// are lost on restart and are not shared between replicas; this is the
// behaviour the old client was built against.
type LegacyCardioStore struct {
	mu       sync.Mutex
	progress map[string]domain.CardioProgress
}

// NewLegacyCardioStore creates an empty store.
func NewLegacyCardioStore() *LegacyCardioStore {
	return &LegacyCardioStore{progress: make(map[string]domain.CardioProgress)}
}

// CardioProgress returns the record for accountID, storing the zero record on first access.
func (s *LegacyCardioStore) CardioProgress(ctx context.Context, accountID string) (domain.CardioProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[accountID]
	if !ok {
		p = domain.CardioProgress{}
		s.progress[accountID] = p
	}
	return p, nil
}

// DeleteCardioProgress forgets the record for accountID.
func (s *LegacyCardioStore) DeleteCardioProgress(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress, accountID)
	return nil
}

// Len reports how many records are held.
func (s *LegacyCardioStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.progress)
}
