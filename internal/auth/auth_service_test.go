package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	autherrors "github.com/CodiWebSite/poni-connect-sub002/internal/auth/errors"
	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byEmail map[string]*auth.User
	created []*auth.User
}

func (f *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	f.created = append(f.created, user)
	return nil
}
func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*auth.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepository) ListByRoles(ctx context.Context, roles ...string) ([]auth.User, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository                  { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeEmployeeRepo) IncrementUsedLeaveDays(ctx context.Context, id string, days int) error {
	return nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("parola123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	employeeID := uuid.New()
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Maria Ionescu",
		Email:      "maria@example.com",
		Password:   string(hashed),
		Role:       domain.RoleEmployee,
		IsActive:   true,
	}
	repo := &fakeUserRepository{byEmail: map[string]*auth.User{user.Email: user}}
	svc := auth.NewService(repo, &fakeEmployeeRepo{})

	t.Run("valid credentials return tokens", func(t *testing.T) {
		access, refresh, resp, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "maria@example.com",
			Password: "parola123",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, domain.RoleEmployee, resp.Role)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "maria@example.com",
			Password: "gresit",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "necunoscut@example.com",
			Password: "parola123",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("disabled accounts cannot log in", func(t *testing.T) {
		disabled := *user
		disabled.IsActive = false
		repo.byEmail["inactiv@example.com"] = &disabled

		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "inactiv@example.com",
			Password: "parola123",
		})

		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	employeeID := uuid.New()
	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		employeeID.String(): {ID: employeeID, FullName: "Andrei Pop"},
	}}
	repo := &fakeUserRepository{byEmail: map[string]*auth.User{}}
	svc := auth.NewService(repo, employees)

	t.Run("defaults to the employee role", func(t *testing.T) {
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:       "Andrei Pop",
			Email:      "andrei@example.com",
			Password:   "parola123",
			EmployeeID: employeeID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, resp.Role)
		assert.Len(t, repo.created, 1)
		// never store the plaintext
		assert.NotEqual(t, "parola123", repo.created[0].Password)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:       "Nimeni",
			Email:      "nimeni@example.com",
			Password:   "parola123",
			EmployeeID: uuid.New().String(),
		})

		assert.Error(t, err)
	})
}
