package app

import (
	"context"
	"fmt"

	"fitlog/internal/domain"
)

// Profile is the client-facing view of an account.
type Profile struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Age          *int     `json:"age"`
	Weight       *float64 `json:"weight"`
	Height       *float64 `json:"height"`
	Gender       *string  `json:"gender"`
	TargetWeight *float64 `json:"target_weight"`
	AvatarURL    *string  `json:"avatar_url"`
}

// ProfileUpdate is the payload of a profile update.
type ProfileUpdate struct {
	Email        string  `json:"email"`
	DisplayName  *string `json:"display_name"`
	Age          int     `json:"age"`
	Weight       float64 `json:"weight"`
	Height       float64 `json:"height"`
	Gender       *string `json:"gender"`
	TargetWeight float64 `json:"target_weight"`
	AvatarURL    *string `json:"avatar_url"`
}

// ProfileService encapsulates profile read and update use cases.
type ProfileService struct {
	repo domain.AccountRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.AccountRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the profile of the account identified by email.
func (s *ProfileService) Get(ctx context.Context, email string) (*Profile, error) {
	if email == "" {
		return nil, domain.ErrInvalidAccountID
	}
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrAccountNotFound
	}
	return profileOf(acct), nil
}

// Update validates and stores profile fields. The display name is only
// changed when supplied; gender and avatar are overwritten, nil clearing them.
func (s *ProfileService) Update(ctx context.Context, u ProfileUpdate) (*Profile, error) {
	if u.Email == "" {
		return nil, domain.ErrInvalidAccountID
	}
	if u.Age < 0 || u.Age > 150 {
		return nil, fmt.Errorf("%w: age must be within [0, 150]", domain.ErrInvalidInput)
	}
	if u.Weight <= 0 || u.Height <= 0 || u.TargetWeight <= 0 {
		return nil, fmt.Errorf("%w: weight, height and target_weight must be > 0", domain.ErrInvalidInput)
	}

	acct, err := s.repo.UpdateProfile(ctx, u.Email, domain.ProfileFields{
		DisplayName:  u.DisplayName,
		Age:          u.Age,
		Gender:       u.Gender,
		Height:       u.Height,
		Weight:       u.Weight,
		TargetWeight: u.TargetWeight,
		AvatarURL:    u.AvatarURL,
	})
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrAccountNotFound
	}
	return profileOf(acct), nil
}

func profileOf(a *domain.Account) *Profile {
	name := a.DisplayName
	if name == "" {
		name = a.Name
	}
	return &Profile{
		Name:         name,
		Email:        a.Email,
		Age:          a.Age,
		Weight:       a.Weight,
		Height:       a.Height,
		Gender:       a.Gender,
		TargetWeight: a.TargetWeight,
		AvatarURL:    a.AvatarURL,
	}
}
