package scheduling

import "suplient/models"

// Overlaps reports whether the half-open candidate interval
// [startMinute, startMinute+duration) intersects any busy interval. Touching
// endpoints are not a conflict: a session ending exactly when another starts
// is allowed.
//
// This predicate is the single shared conflict test for both the availability
// filter and the commit-time re-validation, so the two can never diverge.
func Overlaps(startMinute, duration int, busy []models.BusyInterval) bool {
	end := startMinute + duration
	for _, b := range busy {
		if startMinute < b.End && end > b.Start {
			return true
		}
	}
	return false
}
