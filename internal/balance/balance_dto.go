package balance

type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	Year           int    `json:"year"`
	TotalLeaveDays int    `json:"total_leave_days"`
	UsedLeaveDays  int    `json:"used_leave_days"`
	CarryoverDays  int    `json:"carryover_days"`
	RemainingDays  int    `json:"remaining_days"`
	AlertLevel     string `json:"alert_level"`
}

// CanApprove applies the sufficiency policy to the response, so approval
// callers holding the DTO do not re-derive it.
func (r BalanceResponse) CanApprove(workingDays int) bool {
	b := Balance{
		Year:      r.Year,
		Total:     r.TotalLeaveDays,
		Used:      r.UsedLeaveDays,
		Carryover: r.CarryoverDays,
	}
	return b.CanApprove(workingDays)
}
