package calendar

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=nonworkingday_repo.go -destination=mock/nonworkingday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *NonWorkingDay) error
	FindAllByYear(ctx context.Context, year int) ([]NonWorkingDay, error)
	FindDatesInRange(ctx context.Context, start, end time.Time) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, d *NonWorkingDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByYear(ctx context.Context, year int) ([]NonWorkingDay, error) {
	var days []NonWorkingDay
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

func (r *repository) FindDatesInRange(ctx context.Context, start, end time.Time) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&NonWorkingDay{}).
		Select("to_char(date, 'YYYY-MM-DD')").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Scan(&dates).Error
	return dates, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&NonWorkingDay{}, "id = ?", id).Error
}
