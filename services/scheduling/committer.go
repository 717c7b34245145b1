package scheduling

import (
	"context"
	"time"

	"suplient/models"
	"suplient/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultSchedulingService) CommitBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	logger := utils.GetLogger()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.StatusScheduled
	}
	if booking.MeetingPlatform == "" {
		booking.MeetingPlatform = models.PlatformNone
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := booking.Validate(); err != nil {
		return nil, &InputError{Msg: err.Error()}
	}

	// The conflict check runs in the booking's origin zone so the report reads
	// in the requester's own wall clock.
	local, err := ToLocal(booking.SessionDate, booking.SessionTime, booking.OriginZone)
	if err != nil {
		return nil, NewInputError("invalid session instant: %v", err)
	}
	startMinute, err := ToMinutes(local.Time)
	if err != nil {
		return nil, NewInputError("invalid session time: %v", err)
	}

	check := func(existing []models.Booking) *models.ConflictReport {
		var conflicts []models.ConflictEntry
		for _, ex := range existing {
			if ex.ID == booking.ID {
				continue
			}
			wall, convErr := ToLocal(ex.SessionDate, ex.SessionTime, booking.OriginZone)
			if convErr != nil || wall.Date != local.Date {
				continue
			}
			exStart, minErr := ToMinutes(wall.Time)
			if minErr != nil {
				continue
			}
			taken := []models.BusyInterval{{Start: exStart, End: exStart + ex.Duration, Source: models.SourceInternalBooking}}
			if !Overlaps(startMinute, booking.Duration, taken) {
				continue
			}
			label := ex.Title
			if label == "" {
				label = "Existing session"
			}
			conflicts = append(conflicts, models.ConflictEntry{
				BookingID: ex.ID,
				Label:     label,
				Start:     exStart,
				End:       exStart + ex.Duration,
			})
		}
		if len(conflicts) == 0 {
			return nil
		}
		return &models.ConflictReport{Conflicts: conflicts}
	}

	report, err := s.Bookings.InsertIfFree(ctx, booking, check)
	if err != nil {
		return nil, err
	}
	if report != nil {
		logger.Info("booking rejected: slot already taken",
			zap.String("coachID", booking.CoachID),
			zap.String("date", booking.SessionDate),
			zap.Int("conflicts", len(report.Conflicts)))
		return nil, &ConflictError{Report: report}
	}

	logger.Info("booking committed",
		zap.String("bookingID", booking.ID),
		zap.String("coachID", booking.CoachID),
		zap.String("date", booking.SessionDate),
		zap.String("time", booking.SessionTime))
	return booking, nil
}
