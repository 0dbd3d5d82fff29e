package itinerary

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/preference"
)

func testSynthesizer() *Synthesizer {
	return NewSynthesizer(DefaultWeights(), 30, 9, 0.10)
}

func testPool() []candidate.Candidate {
	pool := []candidate.Candidate{
		{Name: "Cầu Rồng", Category: candidate.CategoryCulture, Latitude: 16.0614, Longitude: 108.2272, Rating: 4.6, Votes: 2400, PriceLevel: 0, EstimatedCostVND: 0, DurationMinutes: 60},
		{Name: "Bà Nà Hills", Category: candidate.CategoryNature, Latitude: 15.9977, Longitude: 107.9881, Rating: 4.5, Votes: 3100, PriceLevel: 3, EstimatedCostVND: 900000, DurationMinutes: 300},
		{Name: "Ngũ Hành Sơn", Category: candidate.CategoryNature, Latitude: 16.0039, Longitude: 108.2631, Rating: 4.4, Votes: 1800, PriceLevel: 1, EstimatedCostVND: 40000, DurationMinutes: 150},
		{Name: "Bảo tàng Chăm", Category: candidate.CategoryCulture, Latitude: 16.0603, Longitude: 108.2232, Rating: 4.2, Votes: 900, PriceLevel: 1, EstimatedCostVND: 60000, DurationMinutes: 90},
		{Name: "Chợ Hàn", Category: candidate.CategoryShopping, Latitude: 16.0682, Longitude: 108.2244, Rating: 4.1, Votes: 1500, PriceLevel: 1, EstimatedCostVND: 200000, DurationMinutes: 90},
		{Name: "Bãi biển Mỹ Khê", Category: candidate.CategoryRelaxation, Latitude: 16.0544, Longitude: 108.2478, Rating: 4.7, Votes: 2600, PriceLevel: 0, EstimatedCostVND: 0, DurationMinutes: 120},
		{Name: "Quán Bé Mặn", Category: candidate.CategoryFood, Latitude: 16.0712, Longitude: 108.2451, Rating: 4.3, Votes: 800, PriceLevel: 1, EstimatedCostVND: 250000, DurationMinutes: 90},
		{Name: "Mì Quảng Bà Mua", Category: candidate.CategoryFood, Latitude: 16.0598, Longitude: 108.2178, Rating: 4.4, Votes: 1100, PriceLevel: 1, EstimatedCostVND: 80000, DurationMinutes: 60},
		{Name: "Bánh xèo Bà Dưỡng", Category: candidate.CategoryFood, Latitude: 16.0571, Longitude: 108.2149, Rating: 4.2, Votes: 950, PriceLevel: 1, EstimatedCostVND: 100000, DurationMinutes: 60},
		{Name: "Cà phê Cộng", Category: candidate.CategoryDrink, Latitude: 16.0661, Longitude: 108.2239, Rating: 4.3, Votes: 600, PriceLevel: 1, EstimatedCostVND: 60000, DurationMinutes: 60},
	}
	return pool
}

func testHotels() []candidate.Candidate {
	return []candidate.Candidate{
		{Name: "Khách sạn Sông Hàn", Category: candidate.CategoryHotel, Latitude: 16.0650, Longitude: 108.2230, Rating: 4.0, EstimatedCostVND: 600000},
		{Name: "Resort Biển Đông", Category: candidate.CategoryHotel, Latitude: 16.0480, Longitude: 108.2490, Rating: 4.6, EstimatedCostVND: 1500000},
	}
}

func baseInput() Input {
	return Input{
		Destination: "Đà Nẵng",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Days:        3,
		BudgetVND:   8000000,
		Style:       SpendingStyleBalanced,
		Energy:      EnergyMedium,
		Preferences: preference.Vector{"food": 0.8, "nature": 0.6},
		Pool:        testPool(),
		Hotels:      testHotels(),
	}
}

func TestBuild_Deterministic(t *testing.T) {
	s := testSynthesizer()
	first := s.Build(baseInput())
	second := s.Build(baseInput())

	require.Equal(t, len(first.Days), len(second.Days))
	for i := range first.Days {
		assert.Equal(t, first.Days[i].Activities, second.Days[i].Activities)
	}
	assert.Equal(t, ComputeFingerprint(first), ComputeFingerprint(second))
}

func TestBuild_DayCountMatchesDuration(t *testing.T) {
	s := testSynthesizer()
	for _, days := range []int{1, 2, 3, 5} {
		in := baseInput()
		in.Days = days
		result := s.Build(in)
		assert.Len(t, result.Days, days, "duration %d", days)
		assert.Equal(t, days, result.DurationDays)
	}
}

func TestBuild_ActivitiesSortedAndNonOverlapping(t *testing.T) {
	s := testSynthesizer()
	result := s.Build(baseInput())

	for _, day := range result.Days {
		for i := 1; i < len(day.Activities); i++ {
			prev := day.Activities[i-1]
			cur := day.Activities[i]
			assert.LessOrEqual(t, prev.EndTime, cur.StartTime,
				"day %d: %q overlaps %q", day.DayNumber, prev.Name, cur.Name)
		}
		for _, activity := range day.Activities {
			assert.Less(t, activity.StartTime, activity.EndTime, "%q has inverted times", activity.Name)
		}
	}
}

func TestBuild_NoActivityRepeatsAcrossDays(t *testing.T) {
	s := testSynthesizer()
	result := s.Build(baseInput())

	seen := make(map[string]int)
	for _, day := range result.Days {
		for _, activity := range day.Activities {
			seen[activity.Name]++
		}
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "%q scheduled more than once", name)
	}
}

func TestBuild_EmptyPoolYieldsEmptyDays(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	in.Pool = nil
	in.Hotels = nil

	result := s.Build(in)
	require.Len(t, result.Days, 3)
	for _, day := range result.Days {
		assert.Empty(t, day.Activities)
	}
	assert.Nil(t, result.Hotel)
}

func TestBuild_DayCostWithinTolerance(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	result := s.Build(in)

	alloc := AllocateBudget(in.BudgetVND, in.Style)
	dayBudget := (alloc.ActivitiesVND + alloc.FoodVND) / int64(in.Days)
	cap := int64(float64(dayBudget) * 1.10)

	for _, day := range result.Days {
		var spent int64
		for _, activity := range day.Activities {
			spent += activity.EstimatedCostVND
		}
		assert.LessOrEqual(t, spent, cap, "day %d overspends", day.DayNumber)
	}
}

func TestBuild_EnergyQuotaRespected(t *testing.T) {
	s := testSynthesizer()

	for _, energy := range []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh} {
		in := baseInput()
		in.Energy = energy
		// drop the food affinity so meals don't blur the activity count
		in.Preferences = preference.Vector{"nature": 0.5}
		result := s.Build(in)

		maxActivities, maxMinutes := DayQuota(energy)
		for _, day := range result.Days {
			count := 0
			minutes := 0
			for _, activity := range day.Activities {
				if activity.MealSlot != "" {
					continue
				}
				count++
				minutes += activity.DurationMinutes
			}
			assert.LessOrEqual(t, count, maxActivities, "energy %s", energy)
			assert.LessOrEqual(t, minutes, maxMinutes, "energy %s", energy)
		}
	}
}

func TestBuild_MealsAnchoredForFoodLovers(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	in.Preferences = preference.Vector{"food": 1.0}
	result := s.Build(in)

	foundMeal := false
	for _, day := range result.Days {
		for _, activity := range day.Activities {
			if activity.MealSlot == "" {
				continue
			}
			foundMeal = true
			switch activity.MealSlot {
			case "breakfast":
				assert.GreaterOrEqual(t, activity.StartTime, "08:00")
			case "lunch":
				assert.GreaterOrEqual(t, activity.StartTime, "12:30")
			case "dinner":
				assert.GreaterOrEqual(t, activity.StartTime, "19:00")
			default:
				t.Fatalf("unexpected meal slot %q", activity.MealSlot)
			}
		}
	}
	assert.True(t, foundMeal, "expected at least one anchored meal")
}

func TestBuild_NoMealsWithoutFoodAffinity(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	in.Preferences = preference.Vector{"nature": 0.9}
	result := s.Build(in)

	for _, day := range result.Days {
		for _, activity := range day.Activities {
			assert.Empty(t, activity.MealSlot)
		}
	}
}

func TestBuild_MealStartIncludesTravelFromPriorStop(t *testing.T) {
	s := testSynthesizer()
	near := Input{
		Destination: "Đà Nẵng",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Days:        1,
		BudgetVND:   3000000,
		Style:       SpendingStyleBalanced,
		Energy:      EnergyMedium,
		Preferences: preference.Vector{"food": 1.0},
		Pool: []candidate.Candidate{
			{Name: "Quán Gần", Category: candidate.CategoryFood, Latitude: 16.0650, Longitude: 108.2230, Rating: 4.5, Votes: 500, PriceLevel: 1, EstimatedCostVND: 80000, DurationMinutes: 60},
		},
		Hotels: []candidate.Candidate{
			{Name: "Khách sạn Sông Hàn", Category: candidate.CategoryHotel, Latitude: 16.0650, Longitude: 108.2230, Rating: 4.0, EstimatedCostVND: 600000},
		},
	}
	far := near
	far.Pool = []candidate.Candidate{
		{Name: "Quán Xa", Category: candidate.CategoryFood, Latitude: 16.2650, Longitude: 108.2230, Rating: 4.5, Votes: 500, PriceLevel: 1, EstimatedCostVND: 80000, DurationMinutes: 60},
	}

	breakfastAt := func(result *Itinerary) string {
		t.Helper()
		for _, activity := range result.Days[0].Activities {
			if activity.MealSlot == "breakfast" {
				return activity.StartTime
			}
		}
		t.Fatal("no breakfast scheduled")
		return ""
	}

	// a restaurant at the hotel is reachable the moment the day opens
	assert.Equal(t, "09:00", breakfastAt(s.Build(near)))
	// one ~22km away is not; its meal slot shifts by the travel leg
	assert.Greater(t, breakfastAt(s.Build(far)), "09:00")
}

func TestBuild_TieBreaksOnRatingThenName(t *testing.T) {
	s := testSynthesizer()
	in := Input{
		Destination: "Đà Nẵng",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Days:        1,
		BudgetVND:   5000000,
		Style:       SpendingStyleBalanced,
		Energy:      EnergyLow,
		Preferences: preference.Vector{},
		Pool: []candidate.Candidate{
			{Name: "B điểm", Category: candidate.CategoryCulture, Rating: 4.0, Votes: 500, PriceLevel: 1, EstimatedCostVND: 50000, DurationMinutes: 90},
			{Name: "A điểm", Category: candidate.CategoryCulture, Rating: 4.0, Votes: 500, PriceLevel: 1, EstimatedCostVND: 50000, DurationMinutes: 90},
		},
	}

	result := s.Build(in)
	require.NotEmpty(t, result.Days[0].Activities)
	assert.Equal(t, "A điểm", result.Days[0].Activities[0].Name)
}

func TestBuild_HotelWithinBudgetShare(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	result := s.Build(in)

	require.NotNil(t, result.Hotel)
	alloc := AllocateBudget(in.BudgetVND, in.Style)
	perNight := alloc.HotelVND / int64(in.Days)
	assert.LessOrEqual(t, result.Hotel.EstimatedCostVND, perNight)
}

func TestBuild_DateRange(t *testing.T) {
	s := testSynthesizer()
	in := baseInput()
	result := s.Build(in)

	assert.Equal(t, "2026-09-01", result.StartDate)
	assert.Equal(t, "2026-09-03", result.EndDate)
	for i, day := range result.Days {
		assert.Equal(t, fmt.Sprintf("2026-09-%02d", i+1), day.Date)
	}
}

func TestComputeFingerprint_ContentEquality(t *testing.T) {
	s := testSynthesizer()
	a := s.Build(baseInput())
	b := s.Build(baseInput())

	// timestamps and IDs must not affect the fingerprint
	a.PublicID = "itin_aaaaaaaaaaaaaaaa"
	b.PublicID = "itin_bbbbbbbbbbbbbbbb"
	a.CreatedAt = time.Now()
	b.CreatedAt = a.CreatedAt.Add(time.Hour)

	assert.Equal(t, ComputeFingerprint(a), ComputeFingerprint(b))

	b.Days[0].Activities = b.Days[0].Activities[1:]
	assert.NotEqual(t, ComputeFingerprint(a), ComputeFingerprint(b))
}
