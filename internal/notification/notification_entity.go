package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeLeaveSubmitted = "leave_submitted"
	TypeLeaveApproved  = "leave_approved"
	TypeLeaveRejected  = "leave_rejected"
	TypeReminder       = "approval_reminder"
	TypeEscalation     = "approval_escalation"
)

// Notification is an in-portal message for one recipient. RelatedID
// points at the leave request it concerns; together with Type and the
// creation day it also serves as the dedup key for the reminder sweep.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        string     `gorm:"type:varchar(50);not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Message     string     `gorm:"type:text;not null"`
	RelatedID   *uuid.UUID `gorm:"type:uuid;index"`
	ReadAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (n *Notification) Read() bool {
	return n.ReadAt != nil
}
