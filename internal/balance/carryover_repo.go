package balance

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=carryover_repo.go -destination=mock/carryover_repo_mock.go -package=mock
type CarryoverRepository interface {
	// DaysForYear returns the days carried into the given year, 0 when no
	// carryover record exists.
	DaysForYear(ctx context.Context, employeeID string, year int) (int, error)
}

type carryoverRepository struct {
	db *gorm.DB
}

func NewCarryoverRepository(db *gorm.DB) CarryoverRepository {
	return &carryoverRepository{db: db}
}

func (r *carryoverRepository) DaysForYear(ctx context.Context, employeeID string, year int) (int, error) {
	var c LeaveCarryover
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("to_year = ?", year).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return c.InitialDays, nil
}
