package profilerequests

// UpdateProfileRequest carries profile edits. Nil fields leave the stored
// value untouched; preference_tags replaces the whole list when present.
type UpdateProfileRequest struct {
	Email          *string  `json:"email"`
	FullName       *string  `json:"full_name"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	EnergyLevel    *string  `json:"energy_level" binding:"omitempty,oneof=low medium high"`
	SpendingStyle  *string  `json:"spending_style" binding:"omitempty,oneof=budget balanced premium"`
	BudgetMinVND   *int64   `json:"budget_min_vnd" binding:"omitempty,gte=0"`
	BudgetMaxVND   *int64   `json:"budget_max_vnd" binding:"omitempty,gte=0"`
	PreferenceTags []string `json:"preference_tags"`
}
