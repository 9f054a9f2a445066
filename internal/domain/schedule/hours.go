package schedule

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// ===============================
// Business hours
// ===============================

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Day struct {
	IsOpen    bool        `json:"isOpen"`
	Intervals []TimeRange `json:"intervals"`
}

// Ranges returns the well-formed intervals of the day in minutes.
// Malformed or empty ranges are skipped.
func (d Day) Ranges() []Interval {
	out := make([]Interval, 0, len(d.Intervals))
	for _, r := range d.Intervals {
		if !isHHMM(r.Start) || !isHHMM(r.End) {
			continue
		}
		start, _ := TimeToMinutes(r.Start)
		end, _ := TimeToMinutes(r.End)
		iv := Interval{Start: start, End: end}
		if !iv.Valid() {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// NormalizeDay drops malformed ranges, sorts the rest by start and merges
// overlapping or touching ones. A closed day keeps no intervals, and a day
// left without intervals is closed.
// NormalizeDay(NormalizeDay(d)) == NormalizeDay(d).
func NormalizeDay(d Day) Day {
	out := Day{IsOpen: d.IsOpen, Intervals: []TimeRange{}}
	if !d.IsOpen {
		return out
	}

	ranges := d.Ranges()
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start == ranges[j].Start {
			return ranges[i].End < ranges[j].End
		}
		return ranges[i].Start < ranges[j].Start
	})

	merged := make([]Interval, 0, len(ranges))
	for _, r := range ranges {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}

	for _, m := range merged {
		out.Intervals = append(out.Intervals, TimeRange{
			Start: MinutesToTime(m.Start),
			End:   MinutesToTime(m.End),
		})
	}
	out.IsOpen = len(out.Intervals) > 0
	return out
}

// Week is indexed by time.Weekday (0 = Sunday).
type Week [7]Day

func NormalizeWeek(w Week) Week {
	var out Week
	for i := range w {
		out[i] = NormalizeDay(w[i])
	}
	return out
}

func (w Week) Day(weekday time.Weekday) Day {
	return w[int(weekday)%7]
}

// MarshalJSON writes the week as {"0": {...}, ..., "6": {...}}.
func (w Week) MarshalJSON() ([]byte, error) {
	m := make(map[string]Day, len(w))
	for i, d := range w {
		if d.Intervals == nil {
			d.Intervals = []TimeRange{}
		}
		m[strconv.Itoa(i)] = d
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the weekday-keyed object. Missing days stay closed
// and unknown keys are ignored.
func (w *Week) UnmarshalJSON(b []byte) error {
	var m map[string]Day
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	var out Week
	for k, d := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i > 6 {
			continue
		}
		out[i] = d
	}
	for i := range out {
		if out[i].Intervals == nil {
			out[i].Intervals = []TimeRange{}
		}
	}

	*w = out
	return nil
}

// DefaultWeek is the schedule given to a business that never configured one.
func DefaultWeek() Week {
	day := func(open bool, ranges ...TimeRange) Day {
		if ranges == nil {
			ranges = []TimeRange{}
		}
		return Day{IsOpen: open, Intervals: ranges}
	}

	return Week{
		time.Sunday:    day(false),
		time.Monday:    day(true, TimeRange{"08:00", "12:00"}, TimeRange{"14:00", "18:00"}),
		time.Tuesday:   day(true, TimeRange{"08:00", "18:00"}),
		time.Wednesday: day(true, TimeRange{"08:00", "18:00"}),
		time.Thursday:  day(true, TimeRange{"08:00", "18:00"}),
		time.Friday:    day(true, TimeRange{"08:00", "18:00"}),
		time.Saturday:  day(true, TimeRange{"09:00", "13:00"}),
	}
}

// IsWithinBusinessHours reports whether the slot fits entirely inside one
// open interval of the weekday. A slot straddling a break is rejected.
func IsWithinBusinessHours(w Week, weekday time.Weekday, slot Interval) bool {
	if !slot.Valid() {
		return false
	}

	d := NormalizeDay(w.Day(weekday))
	if !d.IsOpen {
		return false
	}

	for _, open := range d.Ranges() {
		if open.Contains(slot) {
			return true
		}
	}
	return false
}
