package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00":    0,
		"09:30":    570,
		"23:59":    1439,
		"14:15:42": 855,
	}
	for in, want := range cases {
		got, err := TimeToMinutes(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestTimeToMinutesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9:30", "24:00", "12:60", "12:00:61", "aa:bb", "12-00"} {
		_, err := TimeToMinutes(in)
		assert.ErrorIs(t, err, ErrInvalidTime, in)
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		back, err := TimeToMinutes(MinutesToTime(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestIntervalOverlapIsHalfOpen(t *testing.T) {
	a := Interval{Start: 600, End: 660}

	assert.True(t, a.Overlaps(Interval{Start: 570, End: 630}))
	assert.True(t, a.Overlaps(Interval{Start: 610, End: 620}))
	assert.False(t, a.Overlaps(Interval{Start: 660, End: 720}), "touching at the end")
	assert.False(t, a.Overlaps(Interval{Start: 540, End: 600}), "touching at the start")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2026-10-19", FormatDate(d))

	_, err = ParseDate("19/10/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
