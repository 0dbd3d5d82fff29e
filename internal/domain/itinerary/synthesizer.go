package itinerary

import (
	"fmt"
	"time"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/preference"
	"tripmind/internal/utils/stringutils"
)

const (
	breakfastAnchor = 8 * 60
	lunchAnchor     = 12*60 + 30
	dinnerAnchor    = 19 * 60
	dayEndMinutes   = 22 * 60

	// minimum affinity toward food/drink before meals get anchored slots
	mealAffinityThreshold = 0.2
)

// Synthesizer turns a candidate pool into a day-by-day plan.
// Build is deterministic: the same input always yields the same itinerary.
type Synthesizer struct {
	weights         Weights
	speedKmh        float64
	dayStartMinutes int
	budgetTolerance float64
}

func NewSynthesizer(weights Weights, speedKmh float64, dayStartHour int, budgetTolerance float64) *Synthesizer {
	return &Synthesizer{
		weights:         weights,
		speedKmh:        speedKmh,
		dayStartMinutes: dayStartHour * 60,
		budgetTolerance: budgetTolerance,
	}
}

// Input is everything Build needs. An empty Pool is not an error; the
// resulting days simply stay empty.
type Input struct {
	Destination         string
	StartDate           time.Time
	Days                int
	BudgetVND           int64
	Style               SpendingStyle
	Energy              EnergyLevel
	Preferences         preference.Vector
	RequestedCategories []candidate.Category
	Pool                []candidate.Candidate
	Hotels              []candidate.Candidate
}

func (s *Synthesizer) Build(in Input) *Itinerary {
	days := in.Days
	if days < 1 {
		days = 1
	}
	style := in.Style
	if style == "" {
		style = SpendingStyleBalanced
	}
	energy := in.Energy
	if energy == "" {
		energy = EnergyMedium
	}
	prefs := in.Preferences
	if prefs == nil {
		prefs = preference.Vector{}
	}

	alloc := AllocateBudget(in.BudgetVND, style)
	hotel := s.pickHotel(in.Hotels, alloc.HotelVND, days)

	requested := make(map[candidate.Category]bool, len(in.RequestedCategories))
	for _, c := range in.RequestedCategories {
		requested[c] = true
	}

	anchorMeals := requested[candidate.CategoryFood] ||
		prefs.Get(string(candidate.CategoryFood)) >= mealAffinityThreshold ||
		prefs.Get(string(candidate.CategoryDrink)) >= mealAffinityThreshold

	dayBudget := (alloc.ActivitiesVND + alloc.FoodVND) / int64(days)
	dayBudgetCap := int64(float64(dayBudget) * (1 + s.budgetTolerance))

	used := make(map[string]bool)
	result := &Itinerary{
		Destination:    in.Destination,
		DurationDays:   days,
		StartDate:      in.StartDate.Format("2006-01-02"),
		EndDate:        in.StartDate.AddDate(0, 0, days-1).Format("2006-01-02"),
		TotalBudgetVND: in.BudgetVND,
		SpendingStyle:  style,
		Budget:         alloc,
		Hotel:          hotel,
	}

	for dayNum := 1; dayNum <= days; dayNum++ {
		day := s.fillDay(dayFillInput{
			dayNumber:    dayNum,
			date:         in.StartDate.AddDate(0, 0, dayNum-1),
			pool:         in.Pool,
			used:         used,
			prefs:        prefs,
			requested:    requested,
			style:        style,
			energy:       energy,
			anchorMeals:  anchorMeals,
			dayBudgetCap: dayBudgetCap,
			hotel:        hotel,
		})
		result.Days = append(result.Days, day)
	}

	return result
}

type dayFillInput struct {
	dayNumber    int
	date         time.Time
	pool         []candidate.Candidate
	used         map[string]bool
	prefs        preference.Vector
	requested    map[candidate.Category]bool
	style        SpendingStyle
	energy       EnergyLevel
	anchorMeals  bool
	dayBudgetCap int64
	hotel        *Activity
}

func (s *Synthesizer) fillDay(in dayFillInput) Day {
	day := Day{
		DayNumber:  in.dayNumber,
		Date:       in.date.Format("2006-01-02"),
		Activities: []Activity{},
	}

	maxActivities, maxMinutes := DayQuota(in.energy)

	cursor := s.dayStartMinutes
	var curLat, curLng float64
	if in.hotel != nil {
		curLat, curLng = in.hotel.Latitude, in.hotel.Longitude
	}

	mealAnchors := []struct {
		slot   string
		minute int
	}{
		{"breakfast", breakfastAnchor},
		{"lunch", lunchAnchor},
		{"dinner", dinnerAnchor},
	}
	nextMeal := 0
	if !in.anchorMeals {
		nextMeal = len(mealAnchors)
	}
	// anchors already behind the day start clamp forward to the start
	for nextMeal < len(mealAnchors) && mealAnchors[nextMeal].minute+60 < cursor {
		nextMeal++
	}

	activeMinutes := 0
	activityCount := 0
	var spent int64

	for cursor < dayEndMinutes {
		// a reached meal anchor takes priority over regular slots
		if nextMeal < len(mealAnchors) && cursor >= mealAnchors[nextMeal].minute {
			anchor := mealAnchors[nextMeal]
			nextMeal++
			meal := s.bestCandidate(in, mealCategories, curLat, curLng, dayEndMinutes-cursor, in.dayBudgetCap-spent, maxMinutes)
			if meal == nil {
				continue
			}
			travel := candidate.TravelMinutes(curLat, curLng, meal.Latitude, meal.Longitude, s.speedKmh)
			start := maxInt(anchor.minute, cursor+travel)
			activity := toActivity(*meal, start, "")
			activity.MealSlot = anchor.slot
			day.Activities = append(day.Activities, activity)
			in.used[stringutils.NormalizeKey(meal.Name)] = true
			cursor = start + meal.DurationMinutes
			curLat, curLng = meal.Latitude, meal.Longitude
			spent += meal.EstimatedCostVND
			continue
		}

		if activityCount >= maxActivities || activeMinutes >= maxMinutes {
			if nextMeal < len(mealAnchors) {
				cursor = mealAnchors[nextMeal].minute
				continue
			}
			break
		}

		// the window closes at the next meal anchor so meals stay on time
		window := dayEndMinutes - cursor
		if nextMeal < len(mealAnchors) && mealAnchors[nextMeal].minute-cursor < window {
			window = mealAnchors[nextMeal].minute - cursor
		}

		categories := activityPickCategories(in.anchorMeals)
		pick := s.bestCandidate(in, categories, curLat, curLng, window, in.dayBudgetCap-spent, maxMinutes-activeMinutes)
		if pick == nil {
			if nextMeal < len(mealAnchors) {
				cursor = mealAnchors[nextMeal].minute
				continue
			}
			break
		}

		travel := candidate.TravelMinutes(curLat, curLng, pick.Latitude, pick.Longitude, s.speedKmh)
		start := cursor + travel
		day.Activities = append(day.Activities, toActivity(*pick, start, ""))
		in.used[stringutils.NormalizeKey(pick.Name)] = true
		cursor = start + pick.DurationMinutes
		curLat, curLng = pick.Latitude, pick.Longitude
		spent += pick.EstimatedCostVND
		activeMinutes += pick.DurationMinutes
		activityCount++
	}

	return day
}

var mealCategories = map[candidate.Category]bool{
	candidate.CategoryFood: true,
}

// activityPickCategories returns the categories regular slots may draw from.
// With anchored meals, food stays reserved for the meal slots.
func activityPickCategories(anchorMeals bool) map[candidate.Category]bool {
	categories := make(map[candidate.Category]bool, len(candidate.ActivityCategories))
	for _, c := range candidate.ActivityCategories {
		categories[c] = true
	}
	if anchorMeals {
		delete(categories, candidate.CategoryFood)
	}
	return categories
}

// bestCandidate returns the highest-scoring unused candidate that fits the
// time window, minute quota, and remaining budget. Ties break on rating
// descending, then name ascending, so synthesis stays deterministic.
func (s *Synthesizer) bestCandidate(
	in dayFillInput,
	categories map[candidate.Category]bool,
	fromLat, fromLng float64,
	windowMinutes int,
	remainingBudget int64,
	remainingQuotaMinutes int,
) *candidate.Candidate {
	var best *candidate.Candidate
	var bestScore float64

	for i := range in.pool {
		c := in.pool[i]
		if !categories[c.Category] {
			continue
		}
		if in.used[stringutils.NormalizeKey(c.Name)] {
			continue
		}
		duration := c.DurationMinutes
		if duration <= 0 {
			duration = candidate.DefaultDurationMinutes(c.Category)
			c.DurationMinutes = duration
		}
		travel := candidate.TravelMinutes(fromLat, fromLng, c.Latitude, c.Longitude, s.speedKmh)
		if travel+duration > windowMinutes {
			continue
		}
		if duration > remainingQuotaMinutes {
			continue
		}
		if remainingBudget >= 0 && c.EstimatedCostVND > remainingBudget {
			continue
		}

		score := Score(s.weights, c, ScoreInput{
			Preferences:        in.prefs,
			RequestedCategory:  in.requested,
			Style:              in.style,
			Energy:             in.energy,
			TravelMinutes:      travel,
			RemainingMinutes:   windowMinutes - travel,
			RemainingBudgetVND: remainingBudget,
		})

		if best == nil || better(score, c, bestScore, *best) {
			bc := c
			best = &bc
			bestScore = score
		}
	}
	return best
}

func better(score float64, c candidate.Candidate, bestScore float64, best candidate.Candidate) bool {
	if score != bestScore {
		return score > bestScore
	}
	if c.Rating != best.Rating {
		return c.Rating > best.Rating
	}
	return c.Name < best.Name
}

// pickHotel chooses one hotel for the whole trip within the per-night
// budget. If nothing affordable exists, the cheapest option still wins so a
// tight budget degrades instead of dropping the hotel entirely.
func (s *Synthesizer) pickHotel(hotels []candidate.Candidate, hotelBudgetVND int64, days int) *Activity {
	if len(hotels) == 0 {
		return nil
	}
	nights := days
	if nights < 1 {
		nights = 1
	}
	perNight := hotelBudgetVND / int64(nights)

	var affordable, cheapest *candidate.Candidate
	for i := range hotels {
		h := hotels[i]
		if cheapest == nil || h.EstimatedCostVND < cheapest.EstimatedCostVND ||
			(h.EstimatedCostVND == cheapest.EstimatedCostVND && h.Name < cheapest.Name) {
			hc := h
			cheapest = &hc
		}
		if h.EstimatedCostVND > perNight {
			continue
		}
		if affordable == nil || h.Rating > affordable.Rating ||
			(h.Rating == affordable.Rating && h.Name < affordable.Name) {
			hc := h
			affordable = &hc
		}
	}

	pick := affordable
	if pick == nil {
		pick = cheapest
	}
	activity := toActivity(*pick, 0, "")
	activity.StartTime = ""
	activity.EndTime = ""
	return &activity
}

func toActivity(c candidate.Candidate, startMinute int, mealSlot string) Activity {
	duration := c.DurationMinutes
	if duration <= 0 {
		duration = candidate.DefaultDurationMinutes(c.Category)
	}
	return Activity{
		Name:             c.Name,
		Category:         string(c.Category),
		Address:          c.Address,
		Latitude:         c.Latitude,
		Longitude:        c.Longitude,
		StartTime:        minutesToClock(startMinute),
		EndTime:          minutesToClock(startMinute + duration),
		DurationMinutes:  duration,
		EstimatedCostVND: c.EstimatedCostVND,
		Rating:           c.Rating,
		MealSlot:         mealSlot,
	}
}

func minutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
