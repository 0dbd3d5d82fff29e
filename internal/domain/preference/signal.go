package preference

import (
	"context"
	"time"
)

// ===============================================
// Preference Signal Types
// ===============================================

type SignalType string

const (
	SignalExplicitAsk     SignalType = "explicit_ask"
	SignalItineraryClick  SignalType = "itinerary_click"
	SignalRestaurantAdded SignalType = "restaurant_added"
	SignalPlanModified    SignalType = "plan_modified"
)

// Signal is one append-only preference observation. Signals are never
// updated in place; the effective preference is derived on read.
type Signal struct {
	ID        uint
	UserID    uint
	Tag       string
	Score     float64
	Type      SignalType
	CreatedAt time.Time
}

// Vector is the derived per-tag affinity, each value in [0,1].
// Tags with no recorded signals read as zero.
type Vector map[string]float64

// Get returns the affinity for a tag, zero when unseen.
func (v Vector) Get(tag string) float64 {
	return v[tag]
}

// Top returns up to n tags ordered by descending affinity.
func (v Vector) Top(n int) []string {
	tags := make([]string, 0, len(v))
	for tag := range v {
		tags = append(tags, tag)
	}
	// insertion sort keeps ties stable by name for deterministic output
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0; j-- {
			a, b := tags[j-1], tags[j]
			if v[b] > v[a] || (v[b] == v[a] && b < a) {
				tags[j-1], tags[j] = b, a
			}
		}
	}
	if n < len(tags) {
		tags = tags[:n]
	}
	return tags
}

// ===============================================
// Preference Repository
// ===============================================

type SignalRepository interface {
	Append(ctx context.Context, signal *Signal) error
	FindByUserID(ctx context.Context, userID uint) ([]Signal, error)
}
