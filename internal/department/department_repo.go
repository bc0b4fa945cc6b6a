package department

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Delete(ctx context.Context, id string) error

	AssignHead(ctx context.Context, a *HeadAssignment) error
	UnassignHead(ctx context.Context, departmentID, employeeID string) error
	HeadEmployeeIDs(ctx context.Context, departmentID string) ([]string, error)
	IsHeadOf(ctx context.Context, departmentID, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) AssignHead(ctx context.Context, a *HeadAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) UnassignHead(ctx context.Context, departmentID, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Where("employee_id = ?", employeeID).
		Delete(&HeadAssignment{}).Error
}

func (r *repository) HeadEmployeeIDs(ctx context.Context, departmentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&HeadAssignment{}).
		Select("employee_id::text").
		Where("department_id = ?", departmentID).
		Scan(&ids).Error
	return ids, err
}

func (r *repository) IsHeadOf(ctx context.Context, departmentID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&HeadAssignment{}).
		Where("department_id = ?", departmentID).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
