package calendar

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NonWorkingDay is an institution-declared day off on top of the legal
// holiday table, e.g. a bridge day ordered by government decision.
type NonWorkingDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_non_working_days_date"`
	Reason    string    `gorm:"type:text"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
