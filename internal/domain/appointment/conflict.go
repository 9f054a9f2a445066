package appointment

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func SlotOf(ap models.Appointment) schedule.Interval {
	return schedule.Interval{Start: ap.StartMinute, End: ap.EndMinute}
}

// FindConflict returns the first blocking appointment overlapping candidate,
// ignoring excludeID (0 excludes nothing). Callers pass appointments of a
// single business and date.
func FindConflict(candidate schedule.Interval, existing []models.Appointment, excludeID uint) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Blocks() {
			continue
		}
		if candidate.Overlaps(SlotOf(*ap)) {
			return ap
		}
	}
	return nil
}

// BookedIntervals collects the occupied slots of the blocking appointments.
func BookedIntervals(existing []models.Appointment) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(existing))
	for _, ap := range existing {
		if Status(ap.Status).Blocks() {
			out = append(out, SlotOf(ap))
		}
	}
	return out
}
