package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/utils/stringutils"
)

// Slots are the facts a trip request needs. Zero values mean "not stated";
// parsing never fails, it just leaves slots empty.
type Slots struct {
	Destination string
	Days        int
	BudgetVND   int64
	Categories  []candidate.Category
}

// Empty reports whether nothing at all was extracted.
func (s Slots) Empty() bool {
	return s.Destination == "" && s.Days == 0 && s.BudgetVND == 0 && len(s.Categories) == 0
}

// Missing lists the required slots still unset, in the order the engine
// asks about them.
func (s Slots) Missing() []string {
	var missing []string
	if s.Destination == "" {
		missing = append(missing, "destination")
	}
	if s.Days == 0 {
		missing = append(missing, "days")
	}
	if s.BudgetVND == 0 {
		missing = append(missing, "budget")
	}
	return missing
}

// Merge overlays other on top of s; stated values in other win.
func (s Slots) Merge(other Slots) Slots {
	merged := s
	if other.Destination != "" {
		merged.Destination = other.Destination
	}
	if other.Days > 0 {
		merged.Days = other.Days
	}
	if other.BudgetVND > 0 {
		merged.BudgetVND = other.BudgetVND
	}
	for _, c := range other.Categories {
		found := false
		for _, existing := range merged.Categories {
			if existing == c {
				found = true
				break
			}
		}
		if !found {
			merged.Categories = append(merged.Categories, c)
		}
	}
	return merged
}

var (
	daysPattern     = regexp.MustCompile(`(\d+)\s*ngay`)
	millionPattern  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:trieu|tr|m)\b`)
	thousandPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:nghin|ngan|k)\b`)
	vndPattern      = regexp.MustCompile(`(\d{6,})\s*(?:vnd|dong|d)?\b`)
	barePattern     = regexp.MustCompile(`\b(\d{1,3})\b`)
)

var weekendCues = []string{"cuoi tuan", "t7 cn", "thu 7 chu nhat", "weekend"}

var budgetCues = []string{"ngan sach", "budget", "tien", "khoang", "tam", "chi phi", "gia"}

// cityGazetteer maps accent-folded spellings to display names. Aliases of
// the same city point at one display form.
var cityGazetteer = []struct {
	folded  string
	display string
}{
	{"da lat", "Đà Lạt"},
	{"dalat", "Đà Lạt"},
	{"da nang", "Đà Nẵng"},
	{"danang", "Đà Nẵng"},
	{"ha noi", "Hà Nội"},
	{"hanoi", "Hà Nội"},
	{"ho chi minh", "Hồ Chí Minh"},
	{"sai gon", "Hồ Chí Minh"},
	{"saigon", "Hồ Chí Minh"},
	{"hue", "Huế"},
	{"nha trang", "Nha Trang"},
	{"phu quoc", "Phú Quốc"},
	{"hoi an", "Hội An"},
	{"sa pa", "Sa Pa"},
	{"sapa", "Sa Pa"},
	{"vung tau", "Vũng Tàu"},
	{"can tho", "Cần Thơ"},
	{"quy nhon", "Quy Nhơn"},
	{"ha long", "Hạ Long"},
	{"ninh binh", "Ninh Bình"},
	{"mui ne", "Mũi Né"},
	{"phan thiet", "Phan Thiết"},
	{"ha giang", "Hà Giang"},
}

var (
	foodCues          = []string{"quan an", "nha hang", "an uong", "mon an", "am thuc", "do an", "an ngon", "restaurant", "food"}
	drinkCues         = []string{"ca phe", "cafe", "coffee", "quan nuoc", "tra sua"}
	natureCues        = []string{"thien nhien", "bien", "nui", "thac", "vuon quoc gia", "nature", "beach"}
	cultureCues       = []string{"bao tang", "chua", "di tich", "van hoa", "lich su", "museum", "temple"}
	entertainmentCues = []string{"vui choi", "giai tri", "cong vien", "game"}
	shoppingCues      = []string{"mua sam", "cho dem", "shopping"}
	relaxationCues    = []string{"nghi duong", "spa", "thu gian", "massage"}
	hotelCues         = []string{"khach san", "hotel", "resort", "cho o", "homestay"}
	flightCues        = []string{"chuyen bay", "ve may bay", "may bay", "flight"}
)

// ParseSlots extracts destination, day count, budget, and explicit category
// mentions from one message.
//
// Money normalization happens here and nowhere else: every emitted budget
// is a full VND integer. "5 triệu"/"5tr" -> 5_000_000, "300k" -> 300_000,
// a bare "5000000" passes through, and a bare small number counts as
// millions only when a budget cue sits in the same message.
func ParseSlots(message string) Slots {
	folded := " " + stringutils.NormalizeKey(message) + " "

	slots := Slots{
		Destination: parseDestination(folded),
		Days:        parseDays(folded),
		BudgetVND:   parseBudget(folded),
		Categories:  parseCategories(folded),
	}
	return slots
}

func parseDestination(folded string) string {
	for _, city := range cityGazetteer {
		if strings.Contains(folded, " "+city.folded+" ") {
			return city.display
		}
	}
	return ""
}

func parseDays(folded string) int {
	// "4 ngày 3 đêm" -> the day count is the first number
	if m := daysPattern.FindStringSubmatch(folded); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil && days > 0 && days <= 30 {
			return days
		}
	}
	if containsAny(folded, weekendCues) {
		return 2
	}
	return 0
}

func parseBudget(folded string) int64 {
	if m := millionPattern.FindStringSubmatch(folded); m != nil {
		return scaleAmount(m[1], 1_000_000)
	}
	if m := thousandPattern.FindStringSubmatch(folded); m != nil {
		return scaleAmount(m[1], 1_000)
	}
	if m := vndPattern.FindStringSubmatch(folded); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return v
		}
	}
	if containsAny(folded, budgetCues) {
		// strip day counts first so "3 ngày" never reads as 3 million
		withoutDays := daysPattern.ReplaceAllString(folded, "")
		if m := barePattern.FindStringSubmatch(withoutDays); m != nil {
			if v, err := strconv.ParseInt(m[1], 10, 64); err == nil && v > 0 && v <= 500 {
				return v * 1_000_000
			}
		}
	}
	return 0
}

// scaleAmount multiplies a possibly fractional amount ("1,5") by unit
// using decimal arithmetic so 1.5 triệu lands exactly on 1_500_000.
func scaleAmount(raw string, unit int64) int64 {
	normalized := strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(unit)).IntPart()
}

func parseCategories(folded string) []candidate.Category {
	var categories []candidate.Category
	add := func(c candidate.Category, cues []string) {
		if containsAny(folded, cues) {
			categories = append(categories, c)
		}
	}
	add(candidate.CategoryFood, foodCues)
	add(candidate.CategoryDrink, drinkCues)
	add(candidate.CategoryNature, natureCues)
	add(candidate.CategoryCulture, cultureCues)
	add(candidate.CategoryEntertainment, entertainmentCues)
	add(candidate.CategoryShopping, shoppingCues)
	add(candidate.CategoryRelaxation, relaxationCues)
	add(candidate.CategoryHotel, hotelCues)
	add(candidate.CategoryFlight, flightCues)
	return categories
}
