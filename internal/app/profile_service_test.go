package app

import (
	"context"
	"errors"
	"testing"

	"fitlog/internal/adapter/memory"
	"fitlog/internal/domain"
)

func TestProfileService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	if _, err := db.CreateAccount(ctx, "Alice", "alice@example.com", ""); err != nil {
		t.Fatal(err)
	}
	svc := NewProfileService(db)

	p, err := svc.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Name != "Alice" || p.Age != nil || p.Weight != nil {
		t.Errorf("unexpected fresh profile %+v", p)
	}

	nick := "Ali"
	gender := "female"
	p, err = svc.Update(ctx, ProfileUpdate{
		Email:        "alice@example.com",
		DisplayName:  &nick,
		Age:          29,
		Weight:       61.5,
		Height:       168,
		Gender:       &gender,
		TargetWeight: 59,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Name != "Ali" || *p.Age != 29 || *p.Weight != 61.5 || *p.Gender != "female" || p.AvatarURL != nil {
		t.Errorf("unexpected updated profile %+v", p)
	}

	// Omitting display_name keeps it; omitting gender clears it.
	p, err = svc.Update(ctx, ProfileUpdate{Email: "alice@example.com", Age: 30, Weight: 60, Height: 168, TargetWeight: 59})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Ali" || p.Gender != nil || *p.Age != 30 {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestProfileService_Validation(t *testing.T) {
	ctx := context.Background()
	called := false
	repo := &mockAccountRepo{
		updateProfileFn: func(ctx context.Context, email string, p domain.ProfileFields) (*domain.Account, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewProfileService(repo)

	tests := []struct {
		name string
		u    ProfileUpdate
		want error
	}{
		{"missing email", ProfileUpdate{Age: 1, Weight: 1, Height: 1, TargetWeight: 1}, domain.ErrInvalidAccountID},
		{"negative age", ProfileUpdate{Email: "a", Age: -1, Weight: 1, Height: 1, TargetWeight: 1}, domain.ErrInvalidInput},
		{"age too high", ProfileUpdate{Email: "a", Age: 151, Weight: 1, Height: 1, TargetWeight: 1}, domain.ErrInvalidInput},
		{"zero weight", ProfileUpdate{Email: "a", Age: 20, Height: 1, TargetWeight: 1}, domain.ErrInvalidInput},
		{"zero height", ProfileUpdate{Email: "a", Age: 20, Weight: 1, TargetWeight: 1}, domain.ErrInvalidInput},
		{"zero target", ProfileUpdate{Email: "a", Age: 20, Weight: 1, Height: 1}, domain.ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, tc.u); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if called {
		t.Error("repository must not be called for invalid input")
	}
}

func TestProfileService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(&mockAccountRepo{})

	if _, err := svc.Get(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("Get: expected ErrAccountNotFound, got %v", err)
	}
	u := ProfileUpdate{Email: "ghost@example.com", Age: 20, Weight: 70, Height: 170, TargetWeight: 65}
	if _, err := svc.Update(ctx, u); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("Update: expected ErrAccountNotFound, got %v", err)
	}
}
