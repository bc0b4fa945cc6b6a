package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "github.com/CodiWebSite/poni-connect-sub002/internal/department/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	AssignHead(ctx context.Context, actorID, departmentID string, req AssignHeadRequest) error
	UnassignHead(ctx context.Context, departmentID, employeeID string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Department{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := qtx.Create(ctx, d); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.logger.Info("department created", zap.String("department_id", d.ID.String()))
	return DepartmentResponse{ID: d.ID.String(), Name: d.Name}, nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = DepartmentResponse{ID: d.ID.String(), Name: d.Name}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	heads, err := s.repo.HeadEmployeeIDs(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return DepartmentResponse{ID: d.ID.String(), Name: d.Name, HeadIDs: heads}, nil
}

func (s *service) AssignHead(ctx context.Context, actorID, departmentID string, req AssignHeadRequest) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return departmenterrors.ErrInvalidEmployeeID
	}
	deptUUID, err := uuid.Parse(departmentID)
	if err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return departmenterrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.FindByID(ctx, departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return err
	}

	a := &HeadAssignment{
		ID:           uuid.New(),
		DepartmentID: deptUUID,
		EmployeeID:   employeeUUID,
		AssignedBy:   actorUUID,
	}
	if err := s.repo.AssignHead(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return departmenterrors.ErrHeadAlreadyAssigned
		}
		return err
	}

	s.logger.Info("department head assigned",
		zap.String("department_id", departmentID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("assigned_by", actorID),
	)
	return nil
}

func (s *service) UnassignHead(ctx context.Context, departmentID, employeeID string) error {
	if _, err := uuid.Parse(departmentID); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return departmenterrors.ErrInvalidEmployeeID
	}
	return s.repo.UnassignHead(ctx, departmentID, employeeID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}
	return s.repo.Delete(ctx, id)
}
