package app

import (
	"context"
	"errors"
	"testing"

	"fitlog/internal/adapter/memory"
	"fitlog/internal/domain"
)

func TestLegacyProgressService_Get(t *testing.T) {
	store := memory.NewLegacyCardioStore()
	svc := NewLegacyProgressService(store)

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p != (domain.CardioProgress{}) {
		t.Errorf("expected zero record, got %+v", p)
	}
	if store.Len() != 1 {
		t.Errorf("expected record to be created, store has %d", store.Len())
	}

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidAccountID) {
		t.Errorf("expected ErrInvalidAccountID, got %v", err)
	}
}
