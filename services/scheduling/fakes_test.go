package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "suplient/database/repository/booking"
	"suplient/models"
)

// fakeStore is an in-memory stand-in for the Mongo booking repository. The
// mutex makes InsertIfFree check-and-insert atomic, mirroring the real
// transactional behavior.
type fakeStore struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (f *fakeStore) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeStore) ListForCoachAroundDate(_ context.Context, coachID, utcDate string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nearbyLocked(coachID, utcDate), nil
}

func (f *fakeStore) ListForCoachRange(_ context.Context, coachID, fromDate, toDate string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CoachID == coachID && b.SessionDate >= fromDate && b.SessionDate <= toDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertIfFree(_ context.Context, booking *models.Booking, check bookingRepo.ConflictCheck) (*models.ConflictReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if report := check(f.nearbyLocked(booking.CoachID, booking.SessionDate)); report != nil {
		return report, nil
	}
	f.bookings = append(f.bookings, *booking)
	return nil, nil
}

func (f *fakeStore) AttachMeeting(_ context.Context, bookingID, platform, joinLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].MeetingPlatform = platform
			f.bookings[i].MeetingLink = joinLink
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeStore) UpdateStatus(_ context.Context, bookingID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeStore) nearbyLocked(coachID, utcDate string) []models.Booking {
	day, err := time.Parse(models.DateLayout, utcDate)
	if err != nil {
		return nil
	}
	lo := day.AddDate(0, 0, -1).Format(models.DateLayout)
	hi := day.AddDate(0, 0, 1).Format(models.DateLayout)
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CoachID != coachID {
			continue
		}
		if b.Status != models.StatusScheduled && b.Status != models.StatusInProgress {
			continue
		}
		if b.SessionDate >= lo && b.SessionDate <= hi {
			out = append(out, b)
		}
	}
	return out
}

// stubFeed is a canned CalendarFeed.
type stubFeed struct {
	events    []models.CalendarEvent
	connected bool
	err       error
}

func (s *stubFeed) EventsAround(context.Context, string, string, string) ([]models.CalendarEvent, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return s.events, s.connected, nil
}
