package scheduling

import (
	"context"

	bookingRepo "suplient/database/repository/booking"
	"suplient/models"
)

// CalendarFeed supplies the coach's external calendar events for a window
// around a local date. Implementations report connected=false when the coach
// has no active calendar integration.
type CalendarFeed interface {
	EventsAround(ctx context.Context, coachID, localDate, zone string) (events []models.CalendarEvent, connected bool, err error)
}

// AvailabilityRequest describes one availability query, all in the
// requester's local terms.
type AvailabilityRequest struct {
	CoachID  string
	Date     string // local date, YYYY-MM-DD
	Zone     string // IANA zone name
	Duration int    // minutes
	Selected string // previously selected slot time, "" if none
}

// AvailabilityResult is the filtered slot picture for one local day.
type AvailabilityResult struct {
	Date              string                `json:"date"`
	Zone              string                `json:"timezone"`
	ZoneRecognized    bool                  `json:"timezoneRecognized"`
	Duration          int                   `json:"duration"`
	Slots             []string              `json:"availableSlots"`
	Busy              []models.BusyInterval `json:"busyIntervals"`
	Selected          string                `json:"selected"`
	CalendarConnected bool                  `json:"calendarConnected"`
}

// Service is the scheduling engine: availability queries and the atomic
// booking commit.
type Service interface {
	GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error)
	CommitBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
}

// DefaultSchedulingService implements Service over the booking repository and
// an external calendar feed.
type DefaultSchedulingService struct {
	Bookings bookingRepo.Repository
	Calendar CalendarFeed
}

func NewSchedulingService(bookings bookingRepo.Repository, calendar CalendarFeed) Service {
	return &DefaultSchedulingService{Bookings: bookings, Calendar: calendar}
}
