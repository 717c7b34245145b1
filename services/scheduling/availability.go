package scheduling

import (
	"context"
	"time"

	"suplient/models"
	"suplient/utils"

	"go.uber.org/zap"
)

// FilterAvailable walks the slot catalog and keeps every start time from
// which a session of the given duration fits inside the day without touching
// a busy interval.
func FilterAvailable(duration int, busy []models.BusyInterval) []string {
	out := make([]string, 0, len(Catalog()))
	for _, slot := range Catalog() {
		start, err := ToMinutes(slot)
		if err != nil {
			continue
		}
		if start+duration > models.MinutesPerDay {
			continue
		}
		if Overlaps(start, duration, busy) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// RetainSelection keeps a previously selected slot only while it is still in
// the available list. A cleared selection tells the caller to prompt again.
func RetainSelection(selected string, available []string) string {
	if selected == "" {
		return ""
	}
	for _, slot := range available {
		if slot == selected {
			return selected
		}
	}
	return ""
}

func (s *DefaultSchedulingService) GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error) {
	logger := utils.GetLogger()

	if req.CoachID == "" {
		return nil, NewInputError("coach id is required")
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		return nil, NewInputError("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	if req.Duration < models.MinDurationMinutes || req.Duration > models.MaxDurationMinutes {
		return nil, NewInputError("duration must be between %d and %d minutes", models.MinDurationMinutes, models.MaxDurationMinutes)
	}

	zoneRecognized := ZoneKnown(req.Zone)
	if !zoneRecognized {
		logger.Warn("unrecognized timezone, treating stored times as local",
			zap.String("coachID", req.CoachID), zap.String("zone", req.Zone))
	}

	bookings, err := s.Bookings.ListForCoachAroundDate(ctx, req.CoachID, req.Date)
	if err != nil {
		return nil, err
	}

	var events []models.CalendarEvent
	connected := false
	if s.Calendar != nil {
		events, connected, err = s.Calendar.EventsAround(ctx, req.CoachID, req.Date, req.Zone)
		if err != nil {
			// Calendar trouble must not block internal availability.
			logger.Warn("calendar feed unavailable, continuing without external events",
				zap.String("coachID", req.CoachID), zap.Error(err))
			events, connected = nil, false
		}
	}

	busy := AggregateBusy(req.Date, req.Zone, bookings, events)
	available := FilterAvailable(req.Duration, busy)

	return &AvailabilityResult{
		Date:              req.Date,
		Zone:              req.Zone,
		ZoneRecognized:    zoneRecognized,
		Duration:          req.Duration,
		Slots:             available,
		Busy:              busy,
		Selected:          RetainSelection(req.Selected, available),
		CalendarConnected: connected,
	}, nil
}
