package profileresponses

import (
	"tripmind/internal/domain/user"
)

// ProfileResponse is the caller's travel profile.
type ProfileResponse struct {
	ID             string   `json:"id"`
	Email          *string  `json:"email,omitempty"`
	FullName       *string  `json:"full_name,omitempty"`
	Age            *int     `json:"age,omitempty"`
	Gender         *string  `json:"gender,omitempty"`
	EnergyLevel    string   `json:"energy_level"`
	SpendingStyle  string   `json:"spending_style"`
	BudgetMinVND   int64    `json:"budget_min_vnd"`
	BudgetMaxVND   int64    `json:"budget_max_vnd"`
	PreferenceTags []string `json:"preference_tags"`
}

// NewProfileResponse creates a response from a domain user
func NewProfileResponse(u *user.User) *ProfileResponse {
	tags := u.PreferenceTags
	if tags == nil {
		tags = []string{}
	}
	return &ProfileResponse{
		ID:             u.ExternalID,
		Email:          u.Email,
		FullName:       u.FullName,
		Age:            u.Age,
		Gender:         u.Gender,
		EnergyLevel:    u.EnergyLevel,
		SpendingStyle:  u.SpendingStyle,
		BudgetMinVND:   u.BudgetMinVND,
		BudgetMaxVND:   u.BudgetMaxVND,
		PreferenceTags: tags,
	}
}
