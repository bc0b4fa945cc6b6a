package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByCreator(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindStalePending(ctx context.Context, pendingSince time.Time) ([]LeaveRequest, error)
	// TransitionFrom persists the request's current field values, but only
	// if the stored row still carries fromStatus. It reports whether the
	// row was updated; false means a concurrent transition won.
	TransitionFrom(ctx context.Context, l *LeaveRequest, fromStatus string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByCreator(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindStalePending(ctx context.Context, pendingSince time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPendingDeptHead).
		Where("updated_at <= ?", pendingSince).
		Order("updated_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) TransitionFrom(ctx context.Context, l *LeaveRequest, fromStatus string) (bool, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
UPDATE leave_requests SET
	status = $1,
	employee_signature_ref = $2,
	employee_signature_signed_at = $3,
	dept_head_signature_ref = $4,
	dept_head_signature_signed_at = $5,
	dept_head_id = $6,
	rejected_by = $7,
	rejected_at = $8,
	rejection_reason = $9,
	updated_at = now()
WHERE id = $10 AND status = $11 AND deleted_at IS NULL
`,
			l.Status,
			l.EmployeeSignature.Ref, l.EmployeeSignature.SignedAt,
			l.DeptHeadSignature.Ref, l.DeptHeadSignature.SignedAt,
			l.DeptHeadID,
			l.RejectedBy, l.RejectedAt, l.RejectionReason,
			l.ID, fromStatus,
		)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		return affected == 1, nil
	}

	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", fromStatus).
		Updates(map[string]any{
			"status":                        l.Status,
			"employee_signature_ref":        l.EmployeeSignature.Ref,
			"employee_signature_signed_at":  l.EmployeeSignature.SignedAt,
			"dept_head_signature_ref":       l.DeptHeadSignature.Ref,
			"dept_head_signature_signed_at": l.DeptHeadSignature.SignedAt,
			"dept_head_id":                  l.DeptHeadID,
			"rejected_by":                   l.RejectedBy,
			"rejected_at":                   l.RejectedAt,
			"rejection_reason":              l.RejectionReason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}
