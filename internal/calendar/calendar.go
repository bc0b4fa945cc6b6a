package calendar

import "time"

const dateLayout = "2006-01-02"

// GenericHolidayName labels public holidays that have no fixed-date name,
// e.g. the movable Orthodox feasts.
const GenericHolidayName = "Sarbatoare legala"

// publicHolidays lists the Romanian legal holidays per year as ISO dates.
// Years without an entry contribute no holidays, so dates in such years
// count as working days until the table is extended.
var publicHolidays = map[int][]string{
	2024: {
		"2024-01-01", "2024-01-02",
		"2024-01-06", "2024-01-07",
		"2024-01-24",
		"2024-05-01",
		"2024-05-03", "2024-05-05", "2024-05-06",
		"2024-06-01",
		"2024-06-23", "2024-06-24",
		"2024-08-15",
		"2024-11-30",
		"2024-12-01",
		"2024-12-25", "2024-12-26",
	},
	2025: {
		"2025-01-01", "2025-01-02",
		"2025-01-06", "2025-01-07",
		"2025-01-24",
		"2025-04-18", "2025-04-20", "2025-04-21",
		"2025-05-01",
		"2025-06-01",
		"2025-06-08", "2025-06-09",
		"2025-08-15",
		"2025-11-30",
		"2025-12-01",
		"2025-12-25", "2025-12-26",
	},
	2026: {
		"2026-01-01", "2026-01-02",
		"2026-01-06", "2026-01-07",
		"2026-01-24",
		"2026-04-10", "2026-04-12", "2026-04-13",
		"2026-05-01",
		"2026-05-31", "2026-06-01",
		"2026-08-15",
		"2026-11-30",
		"2026-12-01",
		"2026-12-25", "2026-12-26",
	},
}

// holidayNames maps fixed month-day keys to holiday names. Movable feasts
// are intentionally absent and fall back to GenericHolidayName.
var holidayNames = map[string]string{
	"01-01": "Anul Nou",
	"01-02": "Anul Nou",
	"01-06": "Boboteaza",
	"01-07": "Sfantul Ioan Botezatorul",
	"01-24": "Ziua Unirii Principatelor Romane",
	"05-01": "Ziua Muncii",
	"06-01": "Ziua Copilului",
	"08-15": "Adormirea Maicii Domnului",
	"11-30": "Sfantul Andrei",
	"12-01": "Ziua Nationala a Romaniei",
	"12-25": "Craciunul",
	"12-26": "Craciunul",
}

var holidayIndex = buildHolidayIndex()

func buildHolidayIndex() map[string]struct{} {
	idx := make(map[string]struct{})
	for _, dates := range publicHolidays {
		for _, d := range dates {
			idx[d] = struct{}{}
		}
	}
	return idx
}

// IsPublicHoliday reports whether the date appears in the per-year
// legal holiday table.
func IsPublicHoliday(date time.Time) bool {
	_, ok := holidayIndex[date.Format(dateLayout)]
	return ok
}

// HolidayName returns the name of the holiday falling on the date.
// The second return is false when the date is not a public holiday.
func HolidayName(date time.Time) (string, bool) {
	if !IsPublicHoliday(date) {
		return "", false
	}
	if name, ok := holidayNames[date.Format("01-02")]; ok {
		return name, true
	}
	return GenericHolidayName, true
}

// IsDayOff reports whether the date is a weekend, a public holiday, or one
// of the caller-supplied institution non-working dates (ISO strings).
func IsDayOff(date time.Time, customDates []string) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	if IsPublicHoliday(date) {
		return true
	}
	iso := date.Format(dateLayout)
	for _, d := range customDates {
		if d == iso {
			return true
		}
	}
	return false
}

// CountWorkingDays counts the working days in [start, end] inclusive.
// An inverted range is treated as empty, never an error.
func CountWorkingDays(start, end time.Time, customDates []string) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}

	custom := make(map[string]struct{}, len(customDates))
	for _, d := range customDates {
		custom[d] = struct{}{}
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, off := custom[d.Format(dateLayout)]; off {
			continue
		}
		if !IsDayOff(d, nil) {
			count++
		}
	}
	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
