package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft           = "DRAFT"
	StatusPendingDeptHead = "PENDING_DEPT_HEAD"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
)

// Signature pairs an image reference with the moment of signing. The two
// fields are only ever set together through SignedNow, so a reference
// without a timestamp (or the reverse) cannot be represented by normal use.
type Signature struct {
	Ref      *uuid.UUID `gorm:"type:uuid"`
	SignedAt *time.Time
}

func SignedNow(ref uuid.UUID) Signature {
	now := time.Now().UTC()
	return Signature{Ref: &ref, SignedAt: &now}
}

func (s Signature) Signed() bool {
	return s.Ref != nil && s.SignedAt != nil
}

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber int64     `gorm:"type:bigint;not null;uniqueIndex:idx_leave_requests_number_year"`
	Year          int       `gorm:"type:int;not null;uniqueIndex:idx_leave_requests_number_year"`

	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_created_by"`

	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	WorkingDays int       `gorm:"type:int;not null"`

	ReplacementName     string `gorm:"type:varchar(160)"`
	ReplacementPosition string `gorm:"type:varchar(120)"`

	Status string `gorm:"type:varchar(30);not null;default:'DRAFT';index:idx_leave_requests_status"`

	EmployeeSignature Signature `gorm:"embedded;embeddedPrefix:employee_signature_"`
	DeptHeadSignature Signature `gorm:"embedded;embeddedPrefix:dept_head_signature_"`
	DeptHeadID        *uuid.UUID `gorm:"type:uuid"`

	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsFinal reports whether the request reached a terminal state.
func (l *LeaveRequest) IsFinal() bool {
	return l.Status == StatusApproved || l.Status == StatusRejected
}

// isAllowedStatusTransition encodes the monotonic lifecycle:
// DRAFT -> PENDING_DEPT_HEAD -> {APPROVED, REJECTED}. Terminal states
// accept nothing.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusPendingDeptHead
	case StatusPendingDeptHead:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	default:
		return false
	}
}
