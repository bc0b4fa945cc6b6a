package employee

import (
	"context"
	"database/sql"
	"errors"

	employeeerrors "github.com/CodiWebSite/poni-connect-sub002/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          req.Email,
		Position:       req.Position,
		TotalLeaveDays: DefaultTotalLeaveDays,
	}
	if req.TotalLeaveDays != nil {
		e.TotalLeaveDays = *req.TotalLeaveDays
	}
	if req.DepartmentID != nil {
		deptUUID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.DepartmentID = &deptUUID
	}
	if req.UserID != nil {
		userUUID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.UserID = &userUUID
	}

	if err := qtx.Create(ctx, e); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created", zap.String("employee_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error) {
	e, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Position = req.Position
	if req.TotalLeaveDays != nil {
		e.TotalLeaveDays = *req.TotalLeaveDays
	}
	if req.DepartmentID != nil {
		deptUUID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.DepartmentID = &deptUUID
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		FullName:       e.FullName,
		Email:          e.Email,
		Position:       e.Position,
		TotalLeaveDays: e.TotalLeaveDays,
		UsedLeaveDays:  e.UsedLeaveDays,
	}
	if e.UserID != nil {
		v := e.UserID.String()
		resp.UserID = &v
	}
	if e.DepartmentID != nil {
		v := e.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
