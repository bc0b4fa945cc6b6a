package events

import "time"

const LeaveRequestLifecycleTopic = "portal.leave-request.lifecycle.v1"

const (
	LeaveRequestSubmitted = "leave_request.submitted"
	LeaveRequestApproved  = "leave_request.approved"
	LeaveRequestRejected  = "leave_request.rejected"
)

// LeaveRequestLifecycleEvent travels over the outbox whenever a request
// changes state. The notification consumer fans it out to the interested
// parties; it must carry everything needed for that without extra lookups
// beyond the department-head assignment.
type LeaveRequestLifecycleEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	RequestNumber   int64     `json:"request_number"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	DepartmentID    string    `json:"department_id,omitempty"`
	SubmittedBy     string    `json:"submitted_by"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	WorkingDays     int       `json:"working_days"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
