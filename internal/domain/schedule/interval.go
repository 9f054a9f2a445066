package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	MinutesPerDay      = 24 * 60
	DefaultGranularity = 15

	TimeLayout = "15:04"
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidTime = errors.New("schedule: invalid time")
	ErrInvalidDate = errors.New("schedule: invalid date")
)

var timePattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// TimeToMinutes converte "HH:MM" ou "HH:MM:SS" em minutos desde 00:00.
// Segundos são aceitos e descartados.
func TimeToMinutes(s string) (int, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}

	return h*60 + min, nil
}

// MinutesToTime é o inverso de TimeToMinutes para [0, 1440).
func MinutesToTime(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// isHHMM is the strict form accepted inside stored business hours.
func isHHMM(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := TimeToMinutes(s)
	return err == nil
}

// ParseDate parses a calendar date (YYYY-MM-DD) as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ===============================
// Interval
// ===============================

// Interval is a half-open range of minutes [Start, End).
type Interval struct {
	Start int
	End   int
}

func (i Interval) Valid() bool {
	return i.Start >= 0 && i.Start < i.End
}

// Overlaps reports whether the two intervals share at least one minute.
// Touching intervals (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func OverlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
