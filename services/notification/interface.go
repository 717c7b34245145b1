package notification

import (
	"context"

	rosterRepo "suplient/database/repository/roster"
	"suplient/models"
)

// Sender delivers one payload to one recipient.
type Sender interface {
	Send(ctx context.Context, userID string, payload models.NotificationPayload) error
}

// FanoutFailure records one recipient that could not be reached.
type FanoutFailure struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// FanoutReport summarizes a notification fanout. Failures are informational:
// they never affect the booking or the other recipients.
type FanoutReport struct {
	Delivered int             `json:"delivered"`
	Failures  []FanoutFailure `json:"failures,omitempty"`
}

// AllDelivered reports whether every recipient was reached.
func (r *FanoutReport) AllDelivered() bool {
	return len(r.Failures) == 0
}

// Service fans session notifications out to everyone involved in a booking.
type Service interface {
	NotifyBookingScheduled(ctx context.Context, booking *models.Booking) *FanoutReport
	NotifySessionReminder(ctx context.Context, booking *models.Booking) *FanoutReport
	NotifySessionUpdated(ctx context.Context, booking *models.Booking) *FanoutReport
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Roster rosterRepo.Repository
	Sender Sender
}

func NewNotificationService(roster rosterRepo.Repository, sender Sender) *DefaultNotificationService {
	return &DefaultNotificationService{Roster: roster, Sender: sender}
}
