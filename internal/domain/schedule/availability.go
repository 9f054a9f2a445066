package schedule

type SlotQuery struct {
	Day             Day
	DurationMinutes int
	Booked          []Interval

	// IsToday drops candidates starting before NowMinutes.
	IsToday    bool
	NowMinutes int

	Granularity int
}

// GenerateSlots lists every start time (HH:MM) where a service of the
// given duration fits inside an open interval without overlapping a booked
// one. Candidates advance by Granularity minutes from each interval start.
func GenerateSlots(q SlotQuery) []string {
	slots := []string{}

	day := NormalizeDay(q.Day)
	if !day.IsOpen || q.DurationMinutes <= 0 {
		return slots
	}

	step := q.Granularity
	if step <= 0 {
		step = DefaultGranularity
	}

	for _, open := range day.Ranges() {
		for start := open.Start; start+q.DurationMinutes <= open.End; start += step {
			if q.IsToday && start < q.NowMinutes {
				continue
			}

			candidate := Interval{Start: start, End: start + q.DurationMinutes}
			if OverlapsAny(candidate, q.Booked) {
				continue
			}

			slots = append(slots, MinutesToTime(start))
		}
	}

	return slots
}
