package itinerary

import (
	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/preference"
)

// Weights are the hybrid-score coefficients. All weights are positive; the
// travel term and cost penalty subtract.
type Weights struct {
	Rating        float64
	Popularity    float64
	UserFit       float64
	Duration      float64
	TravelPenalty float64
}

func DefaultWeights() Weights {
	return Weights{
		Rating:        0.30,
		Popularity:    0.20,
		UserFit:       0.25,
		Duration:      0.15,
		TravelPenalty: 0.10,
	}
}

// ScoreInput carries everything the hybrid score needs besides the
// candidate itself.
type ScoreInput struct {
	Preferences        preference.Vector
	RequestedCategory  map[candidate.Category]bool
	Style              SpendingStyle
	Energy             EnergyLevel
	TravelMinutes      int
	RemainingMinutes   int
	RemainingBudgetVND int64
}

// Score computes the hybrid score for a candidate. Higher is better.
// Pure: identical inputs always produce the identical score.
func Score(w Weights, c candidate.Candidate, in ScoreInput) float64 {
	s := w.Rating*ratingNorm(c.Rating) +
		w.Popularity*popularity(c.Votes) +
		w.UserFit*UserFit(c, in.Preferences, in.RequestedCategory, in.Style, in.Energy) +
		w.Duration*durationFit(c.DurationMinutes, in.RemainingMinutes) -
		w.TravelPenalty*travelPenalty(in.TravelMinutes) -
		costPenalty(c.EstimatedCostVND, in.RemainingBudgetVND)
	return s
}

// UserFit blends long-term preference affinity with how well the candidate
// matches the current request, its cost bracket, and the user's pace.
func UserFit(c candidate.Candidate, prefs preference.Vector, requested map[candidate.Category]bool, style SpendingStyle, energy EnergyLevel) float64 {
	affinity := prefs.Get(string(c.Category))

	categoryMatch := 0.5
	if len(requested) > 0 {
		if requested[c.Category] {
			categoryMatch = 1.0
		} else {
			categoryMatch = 0.0
		}
	}

	return 0.40*affinity +
		0.25*categoryMatch +
		0.20*costAlignment(c.PriceLevel, style) +
		0.15*energyAlignment(c.DurationMinutes, energy)
}

func ratingNorm(rating float64) float64 {
	return clamp01(rating / 5.0)
}

func popularity(votes int) float64 {
	return clamp01(float64(votes) / 1000.0)
}

// durationFit rewards candidates that fit in the remaining day.
func durationFit(durationMinutes, remainingMinutes int) float64 {
	if durationMinutes <= 0 || remainingMinutes <= 0 {
		return 0
	}
	if durationMinutes <= remainingMinutes {
		return 1
	}
	return clamp01(float64(remainingMinutes) / float64(durationMinutes))
}

// travelPenalty grows linearly up to a one-hour drive, then saturates.
func travelPenalty(travelMinutes int) float64 {
	return clamp01(float64(travelMinutes) / 60.0)
}

// costPenalty kicks in only when the candidate would overshoot the
// remaining budget, capped so one expensive item cannot dominate.
func costPenalty(costVND, remainingBudgetVND int64) float64 {
	if costVND <= 0 || remainingBudgetVND <= 0 {
		return 0
	}
	if costVND <= remainingBudgetVND {
		return 0
	}
	over := float64(costVND-remainingBudgetVND) / float64(remainingBudgetVND)
	if over > 0.3 {
		return 0.3
	}
	return over
}

// costAlignment maps a provider price level (0-4) against a spending style.
func costAlignment(priceLevel int, style SpendingStyle) float64 {
	switch style {
	case SpendingStyleBudget:
		switch {
		case priceLevel <= 1:
			return 1.0
		case priceLevel == 2:
			return 0.6
		default:
			return 0.2
		}
	case SpendingStylePremium:
		switch {
		case priceLevel >= 3:
			return 1.0
		case priceLevel == 2:
			return 0.7
		default:
			return 0.4
		}
	default:
		switch priceLevel {
		case 2:
			return 1.0
		case 1, 3:
			return 0.7
		default:
			return 0.4
		}
	}
}

// energyAlignment prefers short visits for low-energy travellers and has no
// preference for high-energy ones.
func energyAlignment(durationMinutes int, energy EnergyLevel) float64 {
	switch energy {
	case EnergyLow:
		switch {
		case durationMinutes <= 90:
			return 1.0
		case durationMinutes <= 150:
			return 0.6
		default:
			return 0.2
		}
	case EnergyHigh:
		return 1.0
	default:
		if durationMinutes <= 180 {
			return 1.0
		}
		return 0.5
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
