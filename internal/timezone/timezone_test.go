package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus_Mons"))

	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus_Mons").String())
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 01:30 UTC on the 20th is still the 19th at UTC-3.
	instant := time.Date(2026, 10, 20, 1, 30, 0, 0, time.UTC)

	d := DateOf(instant.In(loc))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, 22*60+30, MinuteOfDay(instant.In(loc)))
}

func TestAtAndMonthRange(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	at := At(date, 9*60+30, loc)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC), at.UTC())

	from, to := MonthRange(2026, time.December)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestFixedClock(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now, Fixed(now).Now())
}
