package balance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/balance"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeEmployeeRepository) IncrementUsedLeaveDays(ctx context.Context, id string, days int) error {
	return nil
}

type fakeCarryoverRepository struct {
	daysForYearFn func(ctx context.Context, employeeID string, year int) (int, error)
}

func (f *fakeCarryoverRepository) DaysForYear(ctx context.Context, employeeID string, year int) (int, error) {
	if f.daysForYearFn != nil {
		return f.daysForYearFn(ctx, employeeID, year)
	}
	return 0, nil
}

func TestBalanceService_ForEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("computes remaining with carryover", func(t *testing.T) {
		employeeID := uuid.New()
		employees := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, employeeID.String(), id)
				return &employee.Employee{ID: employeeID, TotalLeaveDays: 21, UsedLeaveDays: 5}, nil
			},
		}
		carryovers := &fakeCarryoverRepository{
			daysForYearFn: func(ctx context.Context, eid string, year int) (int, error) {
				assert.Equal(t, 2025, year)
				return 4, nil
			},
		}

		svc := balance.NewService(employees, carryovers, balance.DefaultThresholds(), nil)

		resp, err := svc.ForEmployee(ctx, employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Equal(t, 21, resp.TotalLeaveDays)
		assert.Equal(t, 5, resp.UsedLeaveDays)
		assert.Equal(t, 4, resp.CarryoverDays)
		assert.Equal(t, 20, resp.RemainingDays)
		assert.Equal(t, balance.AlertOK, resp.AlertLevel)
	})

	t.Run("unset entitlement defaults to 21", func(t *testing.T) {
		employeeID := uuid.New()
		employees := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: employeeID, TotalLeaveDays: 0, UsedLeaveDays: 18}, nil
			},
		}

		svc := balance.NewService(employees, &fakeCarryoverRepository{}, balance.DefaultThresholds(), nil)

		resp, err := svc.ForEmployee(ctx, employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Equal(t, 21, resp.TotalLeaveDays)
		assert.Equal(t, 3, resp.RemainingDays)
		assert.Equal(t, balance.AlertWarning, resp.AlertLevel)
	})

	t.Run("over-use is critical", func(t *testing.T) {
		employeeID := uuid.New()
		employees := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: employeeID, TotalLeaveDays: 21, UsedLeaveDays: 23}, nil
			},
		}

		svc := balance.NewService(employees, &fakeCarryoverRepository{}, balance.DefaultThresholds(), nil)

		resp, err := svc.ForEmployee(ctx, employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Equal(t, -2, resp.RemainingDays)
		assert.Equal(t, balance.AlertCritical, resp.AlertLevel)
	})

	t.Run("negative employee not found", func(t *testing.T) {
		employees := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := balance.NewService(employees, &fakeCarryoverRepository{}, balance.DefaultThresholds(), nil)

		_, err := svc.ForEmployee(ctx, uuid.New().String(), 2025)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "employee not found")
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		svc := balance.NewService(&fakeEmployeeRepository{}, &fakeCarryoverRepository{}, balance.DefaultThresholds(), nil)

		_, err := svc.ForEmployee(ctx, "not-a-uuid", 2025)

		assert.Error(t, err)
	})

	t.Run("cache hit skips repositories", func(t *testing.T) {
		employeeID := uuid.New().String()
		rdb, mock := redismock.NewClientMock()

		cached := balance.BalanceResponse{
			EmployeeID:     employeeID,
			Year:           2025,
			TotalLeaveDays: 21,
			UsedLeaveDays:  1,
			RemainingDays:  20,
			AlertLevel:     balance.AlertOK,
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		mock.ExpectGet(fmt.Sprintf("balance:%s:%d", employeeID, 2025)).SetVal(string(payload))

		employees := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				t.Fatal("repository must not be hit on cache hit")
				return nil, nil
			},
		}

		svc := balance.NewService(employees, &fakeCarryoverRepository{}, balance.DefaultThresholds(), rdb)

		resp, err := svc.ForEmployee(ctx, employeeID, 2025)

		assert.NoError(t, err)
		assert.Equal(t, 20, resp.RemainingDays)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
