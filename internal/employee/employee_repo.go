package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	IncrementUsedLeaveDays(ctx context.Context, id string, days int) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

// IncrementUsedLeaveDays bumps the used counter in SQL so two concurrent
// approvals can never lose an update.
func (r *repository) IncrementUsedLeaveDays(ctx context.Context, id string, days int) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE employees SET used_leave_days = used_leave_days + $1, updated_at = now() WHERE id = $2 AND deleted_at IS NULL`,
			days, id,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		UpdateColumn("used_leave_days", gorm.Expr("used_leave_days + ?", days)).Error
}
