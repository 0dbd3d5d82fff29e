// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"time"
)

// User models an application user plus the travel profile the planner
// consults when filling slots the dialogue left open.
type User struct {
	ID             uint
	ExternalID     string
	Email          *string
	FullName       *string
	Age            *int
	Gender         *string
	EnergyLevel    string
	SpendingStyle  string
	BudgetMinVND   int64
	BudgetMaxVND   int64
	PreferenceTags []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Email          *string
	FullName       *string
	Age            *int
	Gender         *string
	EnergyLevel    *string
	SpendingStyle  *string
	BudgetMinVND   *int64
	BudgetMaxVND   *int64
	PreferenceTags []string
}

// Repository defines storage operations for users.
type Repository interface {
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}

// ErrInvalidIdentity indicates a missing external ID on the request.
var ErrInvalidIdentity = errors.New("invalid identity: external id is required")

// ErrNotFound indicates the user does not exist.
var ErrNotFound = errors.New("user not found")

// Service persists and resolves users.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser returns the user for an external ID, creating the record on
// first sight with neutral profile defaults.
func (s *Service) EnsureUser(ctx context.Context, externalID string) (*User, error) {
	if externalID == "" {
		return nil, ErrInvalidIdentity
	}

	existing, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	return s.repo.Create(ctx, &User{
		ExternalID:    externalID,
		EnergyLevel:   "medium",
		SpendingStyle: "balanced",
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// GetProfile returns the user record by internal ID.
func (s *Service) GetProfile(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of the update and persists.
func (s *Service) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*User, error) {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		u.Email = update.Email
	}
	if update.FullName != nil {
		u.FullName = update.FullName
	}
	if update.Age != nil {
		u.Age = update.Age
	}
	if update.Gender != nil {
		u.Gender = update.Gender
	}
	if update.EnergyLevel != nil {
		u.EnergyLevel = *update.EnergyLevel
	}
	if update.SpendingStyle != nil {
		u.SpendingStyle = *update.SpendingStyle
	}
	if update.BudgetMinVND != nil {
		u.BudgetMinVND = *update.BudgetMinVND
	}
	if update.BudgetMaxVND != nil {
		u.BudgetMaxVND = *update.BudgetMaxVND
	}
	if update.PreferenceTags != nil {
		u.PreferenceTags = update.PreferenceTags
	}
	u.UpdatedAt = time.Now()

	return s.repo.Update(ctx, u)
}
