package handlers

import (
	"github.com/gin-gonic/gin"

	bookingRepo "suplient/database/repository/booking"
	"suplient/services/integration"
	"suplient/services/notification"
	"suplient/services/scheduling"
)

// HandlerBundle groups the scheduling endpoint handlers into one struct.
type HandlerBundle struct {
	GetAvailability     gin.HandlerFunc
	CommitBooking       gin.HandlerFunc
	AttachMeeting       gin.HandlerFunc
	ListBookings        gin.HandlerFunc
	UpdateBookingStatus gin.HandlerFunc
}

// NewHandlerBundle wires the services into their endpoint handlers.
func NewHandlerBundle(
	schedSvc scheduling.Service,
	integrationSvc integration.Service,
	notifSvc notification.Service,
	bookings bookingRepo.Repository,
	reminders ReminderEnqueuer,
) *HandlerBundle {
	return &HandlerBundle{
		GetAvailability:     GetAvailabilityHandler(schedSvc),
		CommitBooking:       CommitBookingHandler(schedSvc, notifSvc, reminders),
		AttachMeeting:       AttachMeetingHandler(integrationSvc),
		ListBookings:        ListBookingsHandler(bookings),
		UpdateBookingStatus: UpdateBookingStatusHandler(bookings, notifSvc),
	}
}
