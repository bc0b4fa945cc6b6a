package balance

// Thresholds are the alerting policy for remaining leave days. They are
// configuration, not business rules: the calculator itself never blocks.
type Thresholds struct {
	// Critical marks balances at or below this value.
	Critical int
	// Warning marks balances above Critical but at or below this value.
	Warning int
}

func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 0, Warning: 3}
}

const (
	AlertOK       = "ok"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Balance is an employee's leave accounting for one entitlement year.
type Balance struct {
	Year      int
	Total     int
	Used      int
	Carryover int
}

// Remaining may be negative, which signals over-use.
func (b Balance) Remaining() int {
	return b.Total + b.Carryover - b.Used
}

// CanApprove reports whether the balance covers the requested working
// days. A false result is advisory: approvers may still override.
func (b Balance) CanApprove(workingDays int) bool {
	return b.Remaining() >= workingDays
}

func (t Thresholds) AlertLevel(remaining int) string {
	switch {
	case remaining <= t.Critical:
		return AlertCritical
	case remaining <= t.Warning:
		return AlertWarning
	default:
		return AlertOK
	}
}
