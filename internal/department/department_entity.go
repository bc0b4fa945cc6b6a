package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(120);not null;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// HeadAssignment records which employees lead a department. An explicit
// assignment table is the source of truth; department names never decide
// who may approve.
type HeadAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_dept_head_assignment"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_dept_head_assignment"`
	AssignedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
