package candidate

import (
	"context"
	"time"
)

// ===============================================
// Candidate Types
// ===============================================

type Category string

const (
	CategoryFood          Category = "food"
	CategoryDrink         Category = "drink"
	CategoryNature        Category = "nature"
	CategoryCulture       Category = "culture"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryRelaxation    Category = "relaxation"
	CategoryHotel         Category = "hotel"
	CategoryFlight        Category = "flight"
)

// ActivityCategories are the categories eligible for day-plan slots.
// Hotels and flights are picked separately, never scheduled into a day.
var ActivityCategories = []Category{
	CategoryFood,
	CategoryDrink,
	CategoryNature,
	CategoryCulture,
	CategoryEntertainment,
	CategoryShopping,
	CategoryRelaxation,
}

// Candidate is the provider-independent shape every retriever normalizes to.
type Candidate struct {
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Address          string   `json:"address,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Rating           float64  `json:"rating"`
	Votes            int      `json:"votes"`
	PriceLevel       int      `json:"price_level"`
	EstimatedCostVND int64    `json:"estimated_cost_vnd"`
	DurationMinutes  int      `json:"duration_minutes"`
}

// DefaultDurationMinutes returns the typical visit length for a category,
// used when a provider gives no duration hint.
func DefaultDurationMinutes(category Category) int {
	switch category {
	case CategoryFood:
		return 90
	case CategoryDrink:
		return 60
	case CategoryNature:
		return 180
	case CategoryCulture:
		return 120
	case CategoryEntertainment:
		return 150
	case CategoryShopping:
		return 120
	case CategoryRelaxation:
		return 120
	default:
		return 120
	}
}

// IsActivityCategory reports whether the category can fill a day-plan slot.
func IsActivityCategory(category Category) bool {
	for _, c := range ActivityCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ===============================================
// Retriever
// ===============================================

// Retriever fetches ranked candidates from external search providers.
type Retriever interface {
	Places(ctx context.Context, destination string, category Category) ([]Candidate, error)
	Hotels(ctx context.Context, destination string, checkIn, checkOut time.Time) ([]Candidate, error)
	Flights(ctx context.Context, origin, destination string, departure time.Time) ([]Candidate, error)
}
