package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveCarryover holds the days an employee brings from one entitlement
// year into the next. Written by the year-end HR process, read-only here.
// At most one record exists per employee and target year.
type LeaveCarryover struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_carryover_employee_to_year"`
	FromYear   int       `gorm:"type:int;not null"`
	ToYear     int       `gorm:"type:int;not null;uniqueIndex:idx_carryover_employee_to_year"`
	InitialDays int      `gorm:"type:int;not null"`

	CreatedAt time.Time
}
