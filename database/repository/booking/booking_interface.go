package bookingRepo

import (
	"context"

	"suplient/models"
)

// ConflictCheck inspects the coach's live bookings inside the commit
// transaction and returns a non-nil report when the requested interval is
// already taken. A nil report means the insert may proceed.
type ConflictCheck func(existing []models.Booking) *models.ConflictReport

// Repository defines the data access methods used by the scheduling engine.
type Repository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListForCoachAroundDate returns the coach's active bookings whose UTC date
	// falls within one day of the given UTC date. The widened window captures
	// bookings that land on a different local calendar day after conversion.
	ListForCoachAroundDate(ctx context.Context, coachID, utcDate string) ([]models.Booking, error)
	// ListForCoachRange returns the coach's bookings in the inclusive UTC date range.
	ListForCoachRange(ctx context.Context, coachID, fromDate, toDate string) ([]models.Booking, error)
	// InsertIfFree runs the conflict check and the insert as a single atomic
	// unit. It returns a conflict report (and does not insert) when the check
	// rejects, or an error when the transaction itself fails.
	InsertIfFree(ctx context.Context, booking *models.Booking, check ConflictCheck) (*models.ConflictReport, error)
	// AttachMeeting records the meeting link produced by orchestration.
	AttachMeeting(ctx context.Context, bookingID, platform, joinLink string) error
	// UpdateStatus moves a booking through its lifecycle.
	UpdateStatus(ctx context.Context, bookingID, status string) error
}
