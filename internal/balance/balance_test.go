package balance_test

import (
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/balance"

	"github.com/stretchr/testify/assert"
)

func TestBalanceRemaining(t *testing.T) {
	b := balance.Balance{Year: 2025, Total: 21, Used: 18, Carryover: 0}
	assert.Equal(t, 3, b.Remaining())

	b = balance.Balance{Year: 2025, Total: 21, Used: 5, Carryover: 4}
	assert.Equal(t, 20, b.Remaining())

	// Over-use yields a negative remaining, never an error.
	b = balance.Balance{Year: 2025, Total: 21, Used: 23, Carryover: 0}
	assert.Equal(t, -2, b.Remaining())
}

func TestBalanceCanApprove(t *testing.T) {
	b := balance.Balance{Total: 21, Used: 18}

	assert.True(t, b.CanApprove(3))
	assert.False(t, b.CanApprove(5), "insufficient balance is advisory, not blocking")
	assert.True(t, b.CanApprove(0))
}

func TestBalanceResponseCanApprove(t *testing.T) {
	r := balance.BalanceResponse{Year: 2025, TotalLeaveDays: 21, UsedLeaveDays: 18, CarryoverDays: 0, RemainingDays: 3}

	assert.True(t, r.CanApprove(3))
	assert.False(t, r.CanApprove(4))

	// Agrees with the underlying Balance for every outcome.
	b := balance.Balance{Year: r.Year, Total: r.TotalLeaveDays, Used: r.UsedLeaveDays, Carryover: r.CarryoverDays}
	for days := 0; days <= 6; days++ {
		assert.Equal(t, b.CanApprove(days), r.CanApprove(days))
	}
}

func TestThresholdsAlertLevel(t *testing.T) {
	th := balance.DefaultThresholds()

	assert.Equal(t, balance.AlertCritical, th.AlertLevel(0))
	assert.Equal(t, balance.AlertCritical, th.AlertLevel(-2))
	assert.Equal(t, balance.AlertWarning, th.AlertLevel(1))
	assert.Equal(t, balance.AlertWarning, th.AlertLevel(3))
	assert.Equal(t, balance.AlertOK, th.AlertLevel(4))
}
