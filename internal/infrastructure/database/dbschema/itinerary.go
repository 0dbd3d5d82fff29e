package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"tripmind/internal/domain/itinerary"
	"tripmind/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Itinerary{})
}

// Itinerary persists a saved trip plan. The (user_id, fingerprint) unique
// index is what turns a content-duplicate save into a conflict at the
// database level.
type Itinerary struct {
	BaseModel
	PublicID       string                  `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID         uint                    `gorm:"index;uniqueIndex:ux_itinerary_user_fingerprint;not null"`
	User           User                    `gorm:"foreignKey:UserID"`
	Fingerprint    string                  `gorm:"type:varchar(64);uniqueIndex:ux_itinerary_user_fingerprint;not null"`
	Title          string                  `gorm:"type:varchar(255)"`
	Destination    string                  `gorm:"type:varchar(100);not null"`
	DurationDays   int                     `gorm:"not null"`
	StartDate      string                  `gorm:"type:varchar(10);not null"`
	EndDate        string                  `gorm:"type:varchar(10);not null"`
	TotalBudgetVND int64                   `gorm:"not null"`
	SpendingStyle  itinerary.SpendingStyle `gorm:"type:varchar(20);not null;default:'balanced'"`
	HotelVND       int64                   `gorm:"not null;default:0"`
	ActivitiesVND  int64                   `gorm:"not null;default:0"`
	FoodVND        int64                   `gorm:"not null;default:0"`
	Hotel          datatypes.JSON          `gorm:"type:jsonb"`
	Days           datatypes.JSON          `gorm:"type:jsonb;not null"`
}

// NewSchemaItinerary creates a database schema from a domain itinerary.
func NewSchemaItinerary(it *itinerary.Itinerary) (*Itinerary, error) {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return nil, err
	}

	schema := &Itinerary{
		BaseModel: BaseModel{
			ID:        it.ID,
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		},
		PublicID:       it.PublicID,
		UserID:         it.UserID,
		Fingerprint:    it.Fingerprint,
		Title:          it.Title,
		Destination:    it.Destination,
		DurationDays:   it.DurationDays,
		StartDate:      it.StartDate,
		EndDate:        it.EndDate,
		TotalBudgetVND: it.TotalBudgetVND,
		SpendingStyle:  it.SpendingStyle,
		HotelVND:       it.Budget.HotelVND,
		ActivitiesVND:  it.Budget.ActivitiesVND,
		FoodVND:        it.Budget.FoodVND,
		Days:           datatypes.JSON(days),
	}
	if it.Hotel != nil {
		hotel, err := json.Marshal(it.Hotel)
		if err != nil {
			return nil, err
		}
		schema.Hotel = datatypes.JSON(hotel)
	}
	return schema, nil
}

// EtoD converts a schema itinerary back to the domain representation.
func (i *Itinerary) EtoD() (*itinerary.Itinerary, error) {
	it := &itinerary.Itinerary{
		ID:             i.ID,
		PublicID:       i.PublicID,
		UserID:         i.UserID,
		Fingerprint:    i.Fingerprint,
		Title:          i.Title,
		Destination:    i.Destination,
		DurationDays:   i.DurationDays,
		StartDate:      i.StartDate,
		EndDate:        i.EndDate,
		TotalBudgetVND: i.TotalBudgetVND,
		SpendingStyle:  i.SpendingStyle,
		Budget: itinerary.BudgetAllocation{
			HotelVND:      i.HotelVND,
			ActivitiesVND: i.ActivitiesVND,
			FoodVND:       i.FoodVND,
		},
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	if err := json.Unmarshal(i.Days, &it.Days); err != nil {
		return nil, err
	}
	if len(i.Hotel) > 0 {
		var hotel itinerary.Activity
		if err := json.Unmarshal(i.Hotel, &hotel); err != nil {
			return nil, err
		}
		it.Hotel = &hotel
	}
	return it, nil
}
