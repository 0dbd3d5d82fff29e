package planresponses

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/domain/planner"
)

// PlanResponse is the turn response union. Exactly one of the variant
// fields is populated per turn; the zero-valued flags are omitted so each
// variant serializes to its own shape.
type PlanResponse struct {
	OK                    bool            `json:"ok"`
	ConversationID        string          `json:"conversation_id"`
	IsList                bool            `json:"is_list,omitempty"`
	ListMessage           string          `json:"list_message,omitempty"`
	RequiresClarification bool            `json:"requires_clarification,omitempty"`
	ClarificationMessage  string          `json:"clarification_message,omitempty"`
	RequiresConfirmation  bool            `json:"requires_confirmation,omitempty"`
	ConfirmationMessage   string          `json:"confirmation_message,omitempty"`
	Itinerary             *ItineraryShape `json:"itinerary,omitempty"`
	Message               string          `json:"message,omitempty"`
}

// ItineraryShape is the render-facing plan representation consumed by
// chat clients; field names are part of the client contract.
type ItineraryShape struct {
	Destination string      `json:"destination"`
	Duration    int         `json:"duration"`
	Budget      int64       `json:"budget"`
	BudgetMin   int64       `json:"budget_min,omitempty"`
	BudgetMax   int64       `json:"budget_max,omitempty"`
	Days        []DayShape  `json:"days"`
	Hotel       *HotelShape `json:"hotel,omitempty"`
}

type DayShape struct {
	Day        int             `json:"day"`
	Date       string          `json:"date"`
	Activities []ActivityShape `json:"activities"`
}

type ActivityShape struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Time       string  `json:"time"`
	Duration   int     `json:"duration"`
	Rating     float64 `json:"rating,omitempty"`
	Address    string  `json:"address,omitempty"`
	Cost       int64   `json:"cost,omitempty"`
	TravelTime int     `json:"travelTime,omitempty"`
}

type HotelShape struct {
	Name   string  `json:"name"`
	Price  int64   `json:"price"`
	Rating float64 `json:"rating,omitempty"`
	Image  string  `json:"image,omitempty"`
}

// TravelTimeResponse answers the travel-time estimate endpoint.
type TravelTimeResponse struct {
	OK            bool    `json:"ok"`
	Mode          string  `json:"mode"`
	DistanceKm    float64 `json:"distance_km"`
	DurationMin   int     `json:"duration_minutes"`
	DurationLabel string  `json:"duration_label"`
}

var categoryIcons = map[string]string{
	string(candidate.CategoryFood):          "🍜",
	string(candidate.CategoryDrink):         "☕",
	string(candidate.CategoryNature):        "🏞️",
	string(candidate.CategoryCulture):       "🏛️",
	string(candidate.CategoryEntertainment): "🎡",
	string(candidate.CategoryShopping):      "🛍️",
	string(candidate.CategoryRelaxation):    "💆",
	string(candidate.CategoryHotel):         "🏨",
	string(candidate.CategoryFlight):        "✈️",
}

// CategoryIcon maps an activity category to its display icon.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "📍"
}

// IconCategory is the reverse of CategoryIcon, used when a saved payload
// comes back from the client.
func IconCategory(icon string) string {
	for category, i := range categoryIcons {
		if i == icon {
			return category
		}
	}
	return ""
}

// NewPlanResponse maps a dialogue turn outcome onto the response union.
func NewPlanResponse(result *planner.TurnResult) *PlanResponse {
	resp := &PlanResponse{
		OK:             true,
		ConversationID: result.Conversation.PublicID,
	}
	switch {
	case result.IsList:
		resp.IsList = true
		resp.ListMessage = result.Reply
	case result.RequiresClarification:
		resp.RequiresClarification = true
		resp.ClarificationMessage = result.Reply
	case result.RequiresConfirmation:
		resp.RequiresConfirmation = true
		resp.ConfirmationMessage = result.Reply
	case result.Itinerary != nil:
		resp.Itinerary = NewItineraryShape(result.Itinerary)
		resp.Message = result.Reply
	default:
		resp.Message = result.Reply
	}
	return resp
}

// NewItineraryShape converts a domain itinerary into the client shape.
// Travel time between slots is recovered from the schedule gap, since the
// synthesizer already pushed each start time past the travel leg.
func NewItineraryShape(it *itinerary.Itinerary) *ItineraryShape {
	shape := &ItineraryShape{
		Destination: it.Destination,
		Duration:    it.DurationDays,
		Budget:      it.TotalBudgetVND,
		BudgetMax:   it.TotalBudgetVND,
		Days:        make([]DayShape, 0, len(it.Days)),
	}

	for _, day := range it.Days {
		dayShape := DayShape{
			Day:        day.DayNumber,
			Date:       day.Date,
			Activities: make([]ActivityShape, 0, len(day.Activities)),
		}
		prevEnd := -1
		for i, activity := range day.Activities {
			a := ActivityShape{
				ID:       fmt.Sprintf("act-%d-%d", day.DayNumber, i+1),
				Name:     activity.Name,
				Icon:     CategoryIcon(activity.Category),
				Time:     activity.StartTime,
				Duration: activity.DurationMinutes,
				Rating:   activity.Rating,
				Address:  activity.Address,
				Cost:     activity.EstimatedCostVND,
			}
			start := clockToMinutes(activity.StartTime)
			if prevEnd >= 0 && start > prevEnd {
				a.TravelTime = start - prevEnd
			}
			prevEnd = start + activity.DurationMinutes
			dayShape.Activities = append(dayShape.Activities, a)
		}
		shape.Days = append(shape.Days, dayShape)
	}

	if it.Hotel != nil {
		shape.Hotel = &HotelShape{
			Name:   it.Hotel.Name,
			Price:  it.Hotel.EstimatedCostVND,
			Rating: it.Hotel.Rating,
		}
	}
	return shape
}

// ShapeToItinerary rebuilds a domain itinerary from a client payload so a
// delivered plan can be saved. Fields the shape does not carry (spending
// style, coordinates) fall back to neutral values.
func ShapeToItinerary(shape *ItineraryShape) *itinerary.Itinerary {
	it := &itinerary.Itinerary{
		Destination:    shape.Destination,
		DurationDays:   shape.Duration,
		TotalBudgetVND: shape.Budget,
		SpendingStyle:  itinerary.SpendingStyleBalanced,
	}
	if it.TotalBudgetVND == 0 {
		it.TotalBudgetVND = shape.BudgetMax
	}
	it.Budget = itinerary.AllocateBudget(it.TotalBudgetVND, it.SpendingStyle)

	for _, day := range shape.Days {
		d := itinerary.Day{
			DayNumber:  day.Day,
			Date:       day.Date,
			Activities: make([]itinerary.Activity, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			start := clockToMinutes(a.Time)
			d.Activities = append(d.Activities, itinerary.Activity{
				Name:             a.Name,
				Category:         IconCategory(a.Icon),
				Address:          a.Address,
				StartTime:        a.Time,
				EndTime:          minutesToClock(start + a.Duration),
				DurationMinutes:  a.Duration,
				EstimatedCostVND: a.Cost,
				Rating:           a.Rating,
			})
		}
		it.Days = append(it.Days, d)
	}

	if len(it.Days) > 0 {
		it.StartDate = it.Days[0].Date
		it.EndDate = it.Days[len(it.Days)-1].Date
	}
	if shape.Hotel != nil {
		it.Hotel = &itinerary.Activity{
			Name:             shape.Hotel.Name,
			Category:         string(candidate.CategoryHotel),
			EstimatedCostVND: shape.Hotel.Price,
			Rating:           shape.Hotel.Rating,
		}
	}
	return it
}

// NewTravelTimeResponse formats a travel estimate.
func NewTravelTimeResponse(mode string, distanceKm float64, minutes int) *TravelTimeResponse {
	return &TravelTimeResponse{
		OK:            true,
		Mode:          mode,
		DistanceKm:    distanceKm,
		DurationMin:   minutes,
		DurationLabel: formatDuration(minutes),
	}
}

func formatDuration(minutes int) string {
	d := time.Duration(minutes) * time.Minute
	if d < time.Hour {
		return fmt.Sprintf("%d phút", minutes)
	}
	hours := d / time.Hour
	rest := (d % time.Hour) / time.Minute
	if rest == 0 {
		return fmt.Sprintf("%d giờ", hours)
	}
	return fmt.Sprintf("%d giờ %d phút", hours, rest)
}

func clockToMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

func minutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}
