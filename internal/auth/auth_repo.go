package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	// ListByRoles returns active users holding any of the given roles.
	ListByRoles(ctx context.Context, roles ...string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *repository) GetByEmployeeID(ctx context.Context, employeeID string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&user).Error
	return &user, err
}

func (r *repository) ListByRoles(ctx context.Context, roles ...string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Where("is_active = ?", true).
		Find(&users).Error
	return users, err
}
