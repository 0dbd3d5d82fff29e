package dbschema

import "time"

// BaseModel is the shared column set for all schemas.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
