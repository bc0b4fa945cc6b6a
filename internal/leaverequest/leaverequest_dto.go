package leaverequest

// Actor identifies the authenticated caller for guard evaluation.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type CreateLeaveRequest struct {
	StartDate           string `json:"start_date" binding:"required"`
	EndDate             string `json:"end_date" binding:"required"`
	ReplacementName     string `json:"replacement_name"`
	ReplacementPosition string `json:"replacement_position"`
}

type SignLeaveRequest struct {
	// Signature is a base64 data URL produced by the capture canvas.
	Signature string `json:"signature" binding:"required"`
}

type ApproveLeaveRequest struct {
	Signature string `json:"signature" binding:"required"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveRequestResponse struct {
	ID                  string  `json:"id"`
	RequestNumber       int64   `json:"request_number"`
	Year                int     `json:"year"`
	EmployeeID          string  `json:"employee_id"`
	CreatedBy           string  `json:"created_by"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	WorkingDays         int     `json:"working_days"`
	ReplacementName     string  `json:"replacement_name,omitempty"`
	ReplacementPosition string  `json:"replacement_position,omitempty"`
	Status              string  `json:"status"`
	EmployeeSignedAt    *string `json:"employee_signed_at,omitempty"`
	DeptHeadSignedAt    *string `json:"dept_head_signed_at,omitempty"`
	DeptHeadID          *string `json:"dept_head_id,omitempty"`
	RejectedBy          *string `json:"rejected_by,omitempty"`
	RejectedAt          *string `json:"rejected_at,omitempty"`
	RejectionReason     *string `json:"rejection_reason,omitempty"`
}

// ApprovalResult carries the approved request together with the balance
// picture the approver should see. An insufficient balance never blocks
// the approval; it is surfaced here as a warning.
type ApprovalResult struct {
	Request             LeaveRequestResponse `json:"request"`
	RemainingDays       int                  `json:"remaining_days"`
	InsufficientBalance bool                 `json:"insufficient_balance"`
}
