package dbschema

import (
	"github.com/lib/pq"

	"tripmind/internal/domain/user"
	"tripmind/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User persists an application user together with the stated travel profile.
type User struct {
	BaseModel
	ExternalID     string         `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_external_id"`
	Email          *string        `gorm:"type:varchar(320)"`
	FullName       *string        `gorm:"type:varchar(255)"`
	Age            *int           `gorm:"type:int"`
	Gender         *string        `gorm:"type:varchar(20)"`
	EnergyLevel    string         `gorm:"type:varchar(20);not null;default:'medium'"`
	SpendingStyle  string         `gorm:"type:varchar(20);not null;default:'balanced'"`
	BudgetMinVND   int64          `gorm:"not null;default:0"`
	BudgetMaxVND   int64          `gorm:"not null;default:0"`
	PreferenceTags pq.StringArray `gorm:"type:text[]"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		ExternalID:     u.ExternalID,
		Email:          u.Email,
		FullName:       u.FullName,
		Age:            u.Age,
		Gender:         u.Gender,
		EnergyLevel:    u.EnergyLevel,
		SpendingStyle:  u.SpendingStyle,
		BudgetMinVND:   u.BudgetMinVND,
		BudgetMaxVND:   u.BudgetMaxVND,
		PreferenceTags: pq.StringArray(u.PreferenceTags),
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:             u.ID,
		ExternalID:     u.ExternalID,
		Email:          u.Email,
		FullName:       u.FullName,
		Age:            u.Age,
		Gender:         u.Gender,
		EnergyLevel:    u.EnergyLevel,
		SpendingStyle:  u.SpendingStyle,
		BudgetMinVND:   u.BudgetMinVND,
		BudgetMaxVND:   u.BudgetMaxVND,
		PreferenceTags: []string(u.PreferenceTags),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
