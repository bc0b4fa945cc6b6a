package calendar_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsPublicHoliday(t *testing.T) {
	assert.True(t, calendar.IsPublicHoliday(date(2025, time.May, 1)))
	assert.True(t, calendar.IsPublicHoliday(date(2025, time.December, 1)))
	assert.True(t, calendar.IsPublicHoliday(date(2025, time.April, 21)), "Easter Monday 2025")

	assert.False(t, calendar.IsPublicHoliday(date(2025, time.May, 2)))
	// Years without a table entry fall open to "not a holiday".
	assert.False(t, calendar.IsPublicHoliday(date(2030, time.January, 1)))
}

func TestHolidayName(t *testing.T) {
	name, ok := calendar.HolidayName(date(2025, time.May, 1))
	assert.True(t, ok)
	assert.Equal(t, "Ziua Muncii", name)

	// Movable feast: in the year table but not in the fixed-date name map.
	name, ok = calendar.HolidayName(date(2025, time.April, 20))
	assert.True(t, ok)
	assert.Equal(t, calendar.GenericHolidayName, name)

	_, ok = calendar.HolidayName(date(2025, time.May, 2))
	assert.False(t, ok)
}

func TestIsDayOff(t *testing.T) {
	assert.True(t, calendar.IsDayOff(date(2025, time.May, 3), nil), "Saturday")
	assert.True(t, calendar.IsDayOff(date(2025, time.May, 4), nil), "Sunday")
	assert.True(t, calendar.IsDayOff(date(2025, time.May, 1), nil), "public holiday")
	assert.False(t, calendar.IsDayOff(date(2025, time.May, 2), nil))

	custom := []string{"2025-05-02"}
	assert.True(t, calendar.IsDayOff(date(2025, time.May, 2), custom), "institution bridge day")
}

type fakeNonWorkingDayRepository struct {
	dates []string
}

func (f *fakeNonWorkingDayRepository) WithTx(tx *sql.Tx) calendar.Repository { return f }
func (f *fakeNonWorkingDayRepository) Create(ctx context.Context, d *calendar.NonWorkingDay) error {
	return nil
}
func (f *fakeNonWorkingDayRepository) FindAllByYear(ctx context.Context, year int) ([]calendar.NonWorkingDay, error) {
	return nil, nil
}
func (f *fakeNonWorkingDayRepository) FindDatesInRange(ctx context.Context, start, end time.Time) ([]string, error) {
	var dates []string
	for _, d := range f.dates {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, err
		}
		if !day.Before(start) && !day.After(end) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}
func (f *fakeNonWorkingDayRepository) Delete(ctx context.Context, id string) error { return nil }

func TestServiceDayOff(t *testing.T) {
	repo := &fakeNonWorkingDayRepository{dates: []string{"2025-05-02"}}
	svc := calendar.NewService(nil, repo, nil)
	ctx := context.Background()

	dayOff, err := svc.DayOff(ctx, date(2025, time.May, 2))
	assert.NoError(t, err)
	assert.True(t, dayOff, "institution-declared day honored")

	dayOff, err = svc.DayOff(ctx, date(2025, time.May, 1))
	assert.NoError(t, err)
	assert.True(t, dayOff, "public holiday")

	dayOff, err = svc.DayOff(ctx, date(2025, time.May, 3))
	assert.NoError(t, err)
	assert.True(t, dayOff, "Saturday")

	dayOff, err = svc.DayOff(ctx, date(2025, time.May, 5))
	assert.NoError(t, err)
	assert.False(t, dayOff, "plain Monday")
}

func TestCountWorkingDays(t *testing.T) {
	t.Run("range spanning May 1st holiday", func(t *testing.T) {
		// Mon Apr 28 .. Fri May 2: Thu May 1 is a holiday, rest are working.
		got := calendar.CountWorkingDays(date(2025, time.April, 28), date(2025, time.May, 2), nil)
		assert.Equal(t, 4, got)
	})

	t.Run("weekend only", func(t *testing.T) {
		got := calendar.CountWorkingDays(date(2025, time.May, 3), date(2025, time.May, 4), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("single working day", func(t *testing.T) {
		got := calendar.CountWorkingDays(date(2025, time.May, 2), date(2025, time.May, 2), nil)
		assert.Equal(t, 1, got)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		got := calendar.CountWorkingDays(date(2025, time.May, 2), date(2025, time.April, 28), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("custom non-working days excluded", func(t *testing.T) {
		custom := []string{"2025-05-02"}
		got := calendar.CountWorkingDays(date(2025, time.April, 28), date(2025, time.May, 2), custom)
		assert.Equal(t, 3, got)
	})

	t.Run("full week without holidays", func(t *testing.T) {
		got := calendar.CountWorkingDays(date(2025, time.March, 3), date(2025, time.March, 9), nil)
		assert.Equal(t, 5, got)
	})
}
