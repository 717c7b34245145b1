package scheduling

import (
	"sort"
	"time"

	"suplient/models"
)

// AggregateBusy builds the unified busy set for one viewer-local calendar day,
// merging the coach's internal bookings with an externally fetched calendar
// feed. Both inputs arrive in their native representations: bookings as UTC
// wall-time pairs, calendar events as absolute instants.
//
// Entries that fail conversion are dropped rather than blocking the day
// (fail-open): falsely blocking a coach's calendar is worse than missing a
// malformed event. This is a deliberate product decision.
func AggregateBusy(localDate, zone string, bookings []models.Booking, events []models.CalendarEvent) []models.BusyInterval {
	var busy []models.BusyInterval

	for _, b := range bookings {
		if b.Status == models.StatusCancelled || b.Status == models.StatusNoShow {
			continue
		}
		local, err := ToLocal(b.SessionDate, b.SessionTime, zone)
		if err != nil {
			continue
		}
		if local.Date != localDate {
			continue
		}
		start, err := ToMinutes(local.Time)
		if err != nil {
			continue
		}
		busy = append(busy, models.BusyInterval{
			Start:  start,
			End:    start + b.Duration,
			Source: models.SourceInternalBooking,
		})
	}

	for _, ev := range events {
		if ev.AllDay {
			// All-day events carry date-only bounds with an exclusive end. The
			// feed window spans neighboring days, so the block applies only
			// when the target date falls inside the event's own range.
			if _, err := time.Parse(models.DateLayout, ev.Start); err != nil {
				continue
			}
			if _, err := time.Parse(models.DateLayout, ev.End); err != nil {
				continue
			}
			if localDate < ev.Start || localDate >= ev.End {
				continue
			}
			busy = append(busy, models.BusyInterval{
				Start:  0,
				End:    models.MinutesPerDay,
				Source: models.SourceAllDayBlock,
			})
			continue
		}
		start, err := time.Parse(time.RFC3339, ev.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, ev.End)
		if err != nil {
			continue
		}
		// Start and end are converted independently; only the minute-of-day
		// components matter here, and events whose converted start date is not
		// the target date are discarded.
		startDate, startMinute := instantLocalParts(start, zone)
		if startDate != localDate {
			continue
		}
		_, endMinute := instantLocalParts(end, zone)
		busy = append(busy, models.BusyInterval{
			Start:  startMinute,
			End:    endMinute,
			Source: models.SourceExternalCalendar,
		})
	}

	// No overlap merging: the conflict predicate treats the list as a disjunction.
	sort.Slice(busy, func(i, j int) bool {
		if busy[i].Start != busy[j].Start {
			return busy[i].Start < busy[j].Start
		}
		return busy[i].End < busy[j].End
	})
	return busy
}
