package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone (or UTC when the
// tz database is unavailable).
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ===============================
// Clock
// ===============================

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the wall clock.
var System Clock = systemClock{}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// NowIn is the clock's instant seen from the business timezone.
func NowIn(c Clock, tz string) time.Time {
	return c.Now().In(Location(tz))
}

// ===============================
// Calendar helpers
// ===============================

// DateOf returns t's calendar date as UTC midnight, the representation used
// for appointment dates.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// At places a calendar date and minute-of-day in loc.
func At(date time.Time, minutes int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute)
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
