package dbschema

import (
	"time"

	"tripmind/internal/domain/preference"
	"tripmind/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(PreferenceSignal{})
}

// PreferenceSignal is one append-only preference observation. Rows are
// never updated; the vector is recomputed from history on read.
type PreferenceSignal struct {
	ID         uint                  `gorm:"primarykey"`
	UserID     uint                  `gorm:"index:idx_preference_signal_user;not null"`
	User       User                  `gorm:"foreignKey:UserID"`
	Tag        string                `gorm:"type:varchar(50);not null"`
	Score      float64               `gorm:"not null"`
	SignalType preference.SignalType `gorm:"type:varchar(30);not null"`
	CreatedAt  time.Time             `gorm:"index:idx_preference_signal_user;not null"`
}

// NewSchemaPreferenceSignal creates a database schema from a domain signal.
func NewSchemaPreferenceSignal(s *preference.Signal) *PreferenceSignal {
	return &PreferenceSignal{
		ID:         s.ID,
		UserID:     s.UserID,
		Tag:        s.Tag,
		Score:      s.Score,
		SignalType: s.Type,
		CreatedAt:  s.CreatedAt,
	}
}

// EtoD converts a schema signal back to the domain representation.
func (s *PreferenceSignal) EtoD() preference.Signal {
	return preference.Signal{
		ID:        s.ID,
		UserID:    s.UserID,
		Tag:       s.Tag,
		Score:     s.Score,
		Type:      s.SignalType,
		CreatedAt: s.CreatedAt,
	}
}
