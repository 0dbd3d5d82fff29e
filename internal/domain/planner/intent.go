package planner

import (
	"strings"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/utils/stringutils"
)

// Intent is the classified purpose of one user message.
// The variants form a closed set; Classify always returns exactly one.
type Intent interface {
	isIntent()
}

// ListRequest asks for a ranked list of one category ("quán cà phê ở Đà Lạt").
type ListRequest struct {
	Category candidate.Category
}

// ItineraryRequest asks for a trip plan, or a modification of the last one.
type ItineraryRequest struct {
	Modify bool
}

// ClarificationAnswer fills slots the engine asked about.
type ClarificationAnswer struct{}

// ConfirmationAnswer accepts or declines a pending plan summary.
type ConfirmationAnswer struct {
	Accepted bool
}

// Unrelated is anything outside the travel domain.
type Unrelated struct{}

func (ListRequest) isIntent()         {}
func (ItineraryRequest) isIntent()    {}
func (ClarificationAnswer) isIntent() {}
func (ConfirmationAnswer) isIntent()  {}
func (Unrelated) isIntent()           {}

var listCues = []string{
	"goi y", "danh sach", "liet ke", "top ", "list", "quan nao",
	"o dau", "cho nao", "nao ngon", "nhung quan",
}

var travelCues = []string{
	"du lich", "lich trinh", "ke hoach", "chuyen di", "phuot",
	"di choi", "nghi duong", "travel", "trip", "plan", "itinerary",
	"di ", "den ",
}

var modifyCues = []string{
	"sua", "thay doi", "doi thanh", "doi lai", "them ngay", "bot ngay",
	"modify", "change", "chinh",
}

var affirmCues = []string{
	"ok", "oke", "dong y", "xac nhan", "chot", "dung roi",
	"duoc", "yes", "co ", "len lich di",
}

var declineCues = []string{
	"khong", "thoi", "chua", "no ", "huy",
}

// Classify maps a raw message to an intent given the current dialogue
// state. Matching is keyword-based on accent-folded text; the same message
// can mean different things in different states (a bare "3 ngày" is an
// answer mid-clarification but a trip request from scratch).
func Classify(message string, state State) Intent {
	folded := " " + stringutils.NormalizeKey(message) + " "
	slots := ParseSlots(message)

	if state == StateAwaitingConfirmation {
		if containsAny(folded, declineCues) {
			return ConfirmationAnswer{Accepted: false}
		}
		if containsAny(folded, affirmCues) {
			return ConfirmationAnswer{Accepted: true}
		}
		// neither yes nor no: treat as an adjustment to the pending slots
		return ClarificationAnswer{}
	}

	if listCategory, ok := detectListRequest(folded, slots); ok {
		return ListRequest{Category: listCategory}
	}

	if state == StateDelivered && containsAny(folded, modifyCues) {
		return ItineraryRequest{Modify: true}
	}

	if state == StateAwaitingClarification {
		if !slots.Empty() || containsAny(folded, travelCues) {
			return ClarificationAnswer{}
		}
		return Unrelated{}
	}

	if !slots.Empty() || containsAny(folded, travelCues) {
		return ItineraryRequest{}
	}

	return Unrelated{}
}

// detectListRequest fires when a listable category is named without any
// trip framing (no day count, no itinerary vocabulary).
func detectListRequest(folded string, slots Slots) (candidate.Category, bool) {
	var category candidate.Category
	switch {
	case containsAny(folded, drinkCues):
		category = candidate.CategoryDrink
	case containsAny(folded, foodCues):
		category = candidate.CategoryFood
	case containsAny(folded, hotelCues):
		category = candidate.CategoryHotel
	case containsAny(folded, flightCues):
		category = candidate.CategoryFlight
	default:
		return "", false
	}

	if slots.Days > 0 {
		return "", false
	}
	for _, cue := range []string{"lich trinh", "ke hoach", "chuyen di", "du lich", "trip", "plan", "itinerary"} {
		if strings.Contains(folded, cue) {
			return "", false
		}
	}
	// an explicit list cue always wins; otherwise the category mention
	// alone is enough ("quán cà phê ở Đà Lạt")
	return category, true
}

func containsAny(folded string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(folded, cue) {
			return true
		}
	}
	return false
}
