package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDayMergesOverlaps(t *testing.T) {
	d := NormalizeDay(Day{
		IsOpen: true,
		Intervals: []TimeRange{
			{Start: "11:30", End: "14:00"},
			{Start: "09:00", End: "12:00"},
		},
	})

	assert.Equal(t, []TimeRange{{Start: "09:00", End: "14:00"}}, d.Intervals)
}

func TestNormalizeDayMergesTouching(t *testing.T) {
	d := NormalizeDay(Day{
		IsOpen: true,
		Intervals: []TimeRange{
			{Start: "14:00", End: "18:00"},
			{Start: "09:00", End: "14:00"},
		},
	})

	assert.Equal(t, []TimeRange{{Start: "09:00", End: "18:00"}}, d.Intervals)
}

func TestNormalizeDayDropsMalformed(t *testing.T) {
	d := NormalizeDay(Day{
		IsOpen: true,
		Intervals: []TimeRange{
			{Start: "9:00", End: "12:00"},
			{Start: "13:00", End: "12:00"},
			{Start: "15:00", End: "15:00"},
			{Start: "aa", End: "bb"},
			{Start: "14:00", End: "18:00"},
		},
	})

	assert.True(t, d.IsOpen)
	assert.Equal(t, []TimeRange{{Start: "14:00", End: "18:00"}}, d.Intervals)
}

func TestNormalizeDayClosedHasNoIntervals(t *testing.T) {
	d := NormalizeDay(Day{IsOpen: false, Intervals: []TimeRange{{Start: "09:00", End: "12:00"}}})

	assert.False(t, d.IsOpen)
	assert.Empty(t, d.Intervals)
}

func TestNormalizeDayWithoutIntervalsIsClosed(t *testing.T) {
	cases := []struct {
		name string
		in   Day
	}{
		{"open sem intervalos", Day{IsOpen: true}},
		{"open com lista vazia", Day{IsOpen: true, Intervals: []TimeRange{}}},
		{"todos malformados", Day{IsOpen: true, Intervals: []TimeRange{{"aa", "bb"}, {"13:00", "12:00"}, {"10:00", "10:00"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NormalizeDay(tc.in)

			assert.False(t, d.IsOpen)
			assert.NotNil(t, d.Intervals)
			assert.Empty(t, d.Intervals)
		})
	}
}

func TestNormalizeDayIsIdempotent(t *testing.T) {
	inputs := []Day{
		{IsOpen: true, Intervals: []TimeRange{{"10:00", "11:00"}, {"08:00", "10:30"}, {"15:00", "16:00"}}},
		{IsOpen: true},
		{IsOpen: false, Intervals: []TimeRange{{"08:00", "09:00"}}},
		{IsOpen: true, Intervals: []TimeRange{{"x", "y"}, {"12:00", "13:00"}, {"12:30", "12:45"}}},
	}

	for _, in := range inputs {
		once := NormalizeDay(in)
		assert.Equal(t, once, NormalizeDay(once))
	}
}

func TestNormalizedIntervalsAreSortedAndDisjoint(t *testing.T) {
	d := NormalizeDay(Day{
		IsOpen: true,
		Intervals: []TimeRange{
			{"16:00", "17:00"}, {"08:00", "09:00"}, {"08:30", "10:00"}, {"12:00", "13:00"},
		},
	})

	r := d.Ranges()
	require.Len(t, r, 3)
	for i := 1; i < len(r); i++ {
		assert.Less(t, r[i-1].End, r[i].Start)
	}
}

func TestWeekJSONUsesWeekdayKeys(t *testing.T) {
	w := DefaultWeek()

	b, err := json.Marshal(w)
	require.NoError(t, err)

	var raw map[string]Day
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Len(t, raw, 7)
	assert.False(t, raw["0"].IsOpen)
	assert.Equal(t, "09:00", raw["6"].Intervals[0].Start)

	var back Week
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, w, back)
}

func TestWeekUnmarshalIgnoresUnknownKeys(t *testing.T) {
	var w Week
	err := json.Unmarshal([]byte(`{"1":{"isOpen":true,"intervals":[{"start":"09:00","end":"12:00"}]},"9":{"isOpen":true}}`), &w)
	require.NoError(t, err)

	assert.True(t, w.Day(time.Monday).IsOpen)
	assert.False(t, w.Day(time.Tuesday).IsOpen)
	assert.NotNil(t, w.Day(time.Tuesday).Intervals)
}

func TestIsWithinBusinessHours(t *testing.T) {
	w := Week{}
	w[time.Monday] = Day{IsOpen: true, Intervals: []TimeRange{{"09:00", "12:00"}, {"14:00", "18:00"}}}

	assert.True(t, IsWithinBusinessHours(w, time.Monday, Interval{Start: 660, End: 720}), "11:00-12:00 ends on the boundary")
	assert.False(t, IsWithinBusinessHours(w, time.Monday, Interval{Start: 690, End: 750}), "straddles the lunch break")
	assert.False(t, IsWithinBusinessHours(w, time.Monday, Interval{Start: 510, End: 570}), "starts before opening")
	assert.False(t, IsWithinBusinessHours(w, time.Sunday, Interval{Start: 600, End: 660}), "closed day")
	assert.False(t, IsWithinBusinessHours(w, time.Monday, Interval{Start: 600, End: 600}), "empty slot")
}
