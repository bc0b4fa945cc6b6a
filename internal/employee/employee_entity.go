package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTotalLeaveDays is the yearly entitlement applied when HR has not
// set one explicitly.
const DefaultTotalLeaveDays = 21

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	FullName string `gorm:"type:varchar(160);not null"`
	Email    string `gorm:"type:varchar(160);uniqueIndex"`
	Position string `gorm:"type:varchar(120)"`

	TotalLeaveDays int `gorm:"type:int;not null;default:21"`
	UsedLeaveDays  int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
