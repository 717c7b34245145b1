package scheduling

import (
	"context"
	"sync"
	"testing"

	"suplient/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() *models.Booking {
	return &models.Booking{
		CoachID:     "coach-1",
		ClientID:    "client-1",
		Title:       "Deep work session",
		SessionDate: "2024-06-15",
		SessionTime: "09:00",
		Duration:    60,
		OriginZone:  "UTC",
	}
}

func TestCommitBookingFillsDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &stubFeed{})

	committed, err := svc.CommitBooking(context.Background(), validBooking())
	require.NoError(t, err)
	assert.NotEmpty(t, committed.ID)
	assert.Equal(t, models.StatusScheduled, committed.Status)
	assert.Equal(t, models.PlatformNone, committed.MeetingPlatform)
	assert.False(t, committed.CreatedAt.IsZero())
	assert.Equal(t, committed.CreatedAt, committed.UpdatedAt)

	stored, err := store.GetByID(context.Background(), committed.ID)
	require.NoError(t, err)
	assert.Equal(t, "coach-1", stored.CoachID)
}

func TestCommitBookingRejectsInvalidInputBeforeIO(t *testing.T) {
	svc := newTestService(&fakeStore{}, &stubFeed{})
	var inputErr *InputError

	b := validBooking()
	b.ClientID = ""
	_, err := svc.CommitBooking(context.Background(), b)
	require.ErrorAs(t, err, &inputErr, "missing subject")

	b = validBooking()
	b.GroupID = "group-1"
	_, err = svc.CommitBooking(context.Background(), b)
	require.ErrorAs(t, err, &inputErr, "both subjects set")

	b = validBooking()
	b.Duration = 481
	_, err = svc.CommitBooking(context.Background(), b)
	require.ErrorAs(t, err, &inputErr)

	b = validBooking()
	b.SessionTime = "25:00"
	_, err = svc.CommitBooking(context.Background(), b)
	require.ErrorAs(t, err, &inputErr)
}

func TestCommitBookingConflictNamesExisting(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &stubFeed{})

	first, err := svc.CommitBooking(context.Background(), validBooking())
	require.NoError(t, err)

	second := validBooking()
	second.SessionTime = "09:30"
	_, err = svc.CommitBooking(context.Background(), second)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Report.Conflicts, 1)
	entry := conflictErr.Report.Conflicts[0]
	assert.Equal(t, first.ID, entry.BookingID)
	assert.Equal(t, "Deep work session", entry.Label)
	assert.Equal(t, 540, entry.Start)
	assert.Equal(t, 600, entry.End)
}

func TestCommitBookingReportInOriginZone(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &stubFeed{})

	// Existing session at 14:00 UTC, which is 09:00 in Chicago.
	existing := validBooking()
	existing.SessionTime = "14:00"
	_, err := svc.CommitBooking(context.Background(), existing)
	require.NoError(t, err)

	// A Chicago requester asks for 09:30 their time (14:30 UTC).
	second := validBooking()
	second.SessionTime = "14:30"
	second.OriginZone = "America/Chicago"
	_, err = svc.CommitBooking(context.Background(), second)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Report.Conflicts, 1)
	assert.Equal(t, 540, conflictErr.Report.Conflicts[0].Start, "report reads in the requester's wall clock")
}

func TestCommitBookingTouchingSlotsBothSucceed(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &stubFeed{})

	_, err := svc.CommitBooking(context.Background(), validBooking())
	require.NoError(t, err)

	adjacent := validBooking()
	adjacent.SessionTime = "10:00"
	_, err = svc.CommitBooking(context.Background(), adjacent)
	require.NoError(t, err, "back-to-back sessions are allowed")
}

func TestCommitBookingConcurrentOverlapExactlyOneWins(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &stubFeed{})

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CommitBooking(context.Background(), validBooking())
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var conflictErr *ConflictError
			require.ErrorAs(t, err, &conflictErr)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent commit wins")
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, store.bookings, 1)
}
