package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	calendarerrors "github.com/CodiWebSite/poni-connect-sub002/internal/calendar/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const nonWorkingRangeKeyPrefix = "calendar:nonworking:"

func nonWorkingRangeKey(start, end time.Time) string {
	return fmt.Sprintf("%s%s:%s", nonWorkingRangeKeyPrefix, start.Format(dateLayout), end.Format(dateLayout))
}

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	WorkingDays(ctx context.Context, start, end time.Time) (int, error)
	DayOff(ctx context.Context, date time.Time) (bool, error)
	DeclareNonWorkingDay(ctx context.Context, actorID string, req DeclareNonWorkingDayRequest) (NonWorkingDayResponse, error)
	ListNonWorkingDays(ctx context.Context, year int) ([]NonWorkingDayResponse, error)
	RemoveNonWorkingDay(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// WorkingDays counts working days in [start, end], excluding weekends,
// public holidays, and institution-declared non-working days.
func (s *service) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, nil
	}

	custom, err := s.nonWorkingDatesInRange(ctx, truncateToDay(start), truncateToDay(end))
	if err != nil {
		return 0, err
	}

	return CountWorkingDays(start, end, custom), nil
}

// DayOff reports whether the date is a weekend, public holiday, or an
// institution-declared non-working day.
func (s *service) DayOff(ctx context.Context, date time.Time) (bool, error) {
	day := truncateToDay(date)
	custom, err := s.nonWorkingDatesInRange(ctx, day, day)
	if err != nil {
		return false, err
	}
	return IsDayOff(date, custom), nil
}

func (s *service) nonWorkingDatesInRange(ctx context.Context, start, end time.Time) ([]string, error) {
	cacheKey := nonWorkingRangeKey(start, end)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return dates, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		dates, err := s.repo.FindDatesInRange(ctx, start, end)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(dates); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, 30*time.Minute)
			}
		}

		return dates, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]string), nil
}

func (s *service) DeclareNonWorkingDay(ctx context.Context, actorID string, req DeclareNonWorkingDayRequest) (NonWorkingDayResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return NonWorkingDayResponse{}, calendarerrors.ErrInvalidActorID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return NonWorkingDayResponse{}, calendarerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("declare non-working day begin tx failed", zap.Error(err))
		return NonWorkingDayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &NonWorkingDay{
		ID:        uuid.New(),
		Date:      date,
		Reason:    req.Reason,
		CreatedBy: actorUUID,
	}
	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("declare non-working day persist failed", zap.Error(err))
		return NonWorkingDayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return NonWorkingDayResponse{}, err
	}

	s.invalidateRangeCache(ctx)
	s.logger.Info("non-working day declared",
		zap.String("date", req.Date),
		zap.String("actor_id", actorID),
	)

	return mapToNonWorkingDayResponse(*d), nil
}

func (s *service) ListNonWorkingDays(ctx context.Context, year int) ([]NonWorkingDayResponse, error) {
	days, err := s.repo.FindAllByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	resp := make([]NonWorkingDayResponse, len(days))
	for i, d := range days {
		resp[i] = mapToNonWorkingDayResponse(d)
	}
	return resp, nil
}

func (s *service) RemoveNonWorkingDay(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return calendarerrors.ErrInvalidNonWorkingDayID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRangeCache(ctx)
	return nil
}

// invalidateRangeCache drops every cached range; declared days are rare
// enough that a full flush of the prefix is simpler than range tracking.
func (s *service) invalidateRangeCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, nonWorkingRangeKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("non-working day cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
}

func mapToNonWorkingDayResponse(d NonWorkingDay) NonWorkingDayResponse {
	return NonWorkingDayResponse{
		ID:        d.ID.String(),
		Date:      d.Date.Format(dateLayout),
		Reason:    d.Reason,
		CreatedBy: d.CreatedBy.String(),
	}
}
