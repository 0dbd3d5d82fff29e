package itinerary

import (
	"context"
	"time"
)

// ===============================================
// Itinerary Types
// ===============================================

// SpendingStyle controls how the total budget is split across hotel,
// activities, and food.
type SpendingStyle string

const (
	SpendingStyleBudget   SpendingStyle = "budget"
	SpendingStyleBalanced SpendingStyle = "balanced"
	SpendingStylePremium  SpendingStyle = "premium"
)

// EnergyLevel caps how much a single day can hold.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// Activity is one scheduled slot in a day plan.
type Activity struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Address          string  `json:"address,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	DurationMinutes  int     `json:"duration_minutes"`
	EstimatedCostVND int64   `json:"estimated_cost_vnd"`
	Rating           float64 `json:"rating,omitempty"`
	MealSlot         string  `json:"meal_slot,omitempty"`
}

// Day holds the ordered activities for one calendar day.
// A day with no feasible activities is valid and stays empty.
type Day struct {
	DayNumber  int        `json:"day_number"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

// BudgetAllocation is the per-concern split of the total budget.
type BudgetAllocation struct {
	HotelVND      int64 `json:"hotel_vnd"`
	ActivitiesVND int64 `json:"activities_vnd"`
	FoodVND       int64 `json:"food_vnd"`
}

// Itinerary is a complete generated trip plan.
type Itinerary struct {
	ID             uint             `json:"-"`
	PublicID       string           `json:"id"`
	UserID         uint             `json:"-"`
	Title          string           `json:"title,omitempty"`
	Destination    string           `json:"destination"`
	DurationDays   int              `json:"duration_days"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	TotalBudgetVND int64            `json:"total_budget_vnd"`
	SpendingStyle  SpendingStyle    `json:"spending_style"`
	Budget         BudgetAllocation `json:"budget_allocation"`
	Hotel          *Activity        `json:"hotel,omitempty"`
	Days           []Day            `json:"days"`
	Fingerprint    string           `json:"-"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ===============================================
// Itinerary Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, itinerary *Itinerary) error
	FindByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Itinerary, error)
	FindByUserID(ctx context.Context, userID uint) ([]*Itinerary, error)
	DeleteByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) error
}

// AllocateBudget splits a total budget by spending style. The shares come
// from observed spending patterns: budget travellers put most of the money
// into the room, premium travellers spread more across experiences.
func AllocateBudget(totalVND int64, style SpendingStyle) BudgetAllocation {
	var hotel, activities, food float64
	switch style {
	case SpendingStyleBudget:
		hotel, activities, food = 0.30, 0.10, 0.15
	case SpendingStylePremium:
		hotel, activities, food = 0.50, 0.30, 0.20
	default:
		hotel, activities, food = 0.40, 0.20, 0.15
	}
	total := float64(totalVND)
	return BudgetAllocation{
		HotelVND:      int64(total * hotel),
		ActivitiesVND: int64(total * activities),
		FoodVND:       int64(total * food),
	}
}

// DayQuota returns the per-day activity count and active-minute caps for an
// energy level.
func DayQuota(level EnergyLevel) (maxActivities, maxMinutes int) {
	switch level {
	case EnergyLow:
		return 2, 240
	case EnergyHigh:
		return 6, 540
	default:
		return 4, 360
	}
}
