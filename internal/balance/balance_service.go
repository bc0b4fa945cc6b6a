package balance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	balanceerrors "github.com/CodiWebSite/poni-connect-sub002/internal/balance/errors"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

func balanceCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("balance:%s:%d", employeeID, year)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	ForEmployee(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
	// Invalidate drops the cached balance after the used counter moves.
	Invalidate(ctx context.Context, employeeID string, year int)
}

type service struct {
	employees  employee.Repository
	carryovers CarryoverRepository
	thresholds Thresholds
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	employees employee.Repository,
	carryovers CarryoverRepository,
	thresholds Thresholds,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		employees:  employees,
		carryovers: carryovers,
		thresholds: thresholds,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) ForEmployee(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2100 {
		return BalanceResponse{}, balanceerrors.ErrInvalidYear
	}

	cacheKey := balanceCacheKey(employeeID, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp BalanceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.computeBalance(ctx, employeeID, year)
		if err != nil {
			return BalanceResponse{}, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}

	return v.(BalanceResponse), nil
}

func (s *service) computeBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	carryover, err := s.carryovers.DaysForYear(ctx, employeeID, year)
	if err != nil {
		return BalanceResponse{}, err
	}

	total := e.TotalLeaveDays
	if total == 0 {
		total = employee.DefaultTotalLeaveDays
	}

	b := Balance{
		Year:      year,
		Total:     total,
		Used:      e.UsedLeaveDays,
		Carryover: carryover,
	}

	remaining := b.Remaining()
	level := s.thresholds.AlertLevel(remaining)
	if level != AlertOK {
		s.logger.Warn("leave balance below threshold",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Int("remaining_days", remaining),
			zap.String("alert_level", level),
		)
	}

	return BalanceResponse{
		EmployeeID:     employeeID,
		Year:           year,
		TotalLeaveDays: b.Total,
		UsedLeaveDays:  b.Used,
		CarryoverDays:  b.Carryover,
		RemainingDays:  remaining,
		AlertLevel:     level,
	}, nil
}

func (s *service) Invalidate(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balanceCacheKey(employeeID, year)).Err(); err != nil {
		s.logger.Warn("balance cache invalidation failed",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
	}
}
