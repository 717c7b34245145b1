package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"suplient/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	clients map[string]*models.Client
	groups  map[string]*models.Group
}

func (f *fakeRoster) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID}, nil
}

func (f *fakeRoster) GetClientByID(_ context.Context, clientID string) (*models.Client, error) {
	if c, ok := f.clients[clientID]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("client %s not found", clientID)
}

func (f *fakeRoster) GetGroupByID(_ context.Context, groupID string) (*models.Group, error) {
	if g, ok := f.groups[groupID]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("group %s not found", groupID)
}

// recordingSender collects sends and fails for configured recipients.
type recordingSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (s *recordingSender) Send(_ context.Context, userID string, _ models.NotificationPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[userID] {
		return errors.New("device unreachable")
	}
	s.sent = append(s.sent, userID)
	return nil
}

func groupBooking() *models.Booking {
	return &models.Booking{
		ID:          "bk-1",
		CoachID:     "coach-1",
		GroupID:     "group-1",
		Title:       "Group session",
		SessionDate: "2024-06-15",
		SessionTime: "09:00",
		Duration:    60,
		Status:      models.StatusScheduled,
	}
}

func fiveMemberGroup() *models.Group {
	g := &models.Group{ID: "group-1", CoachID: "coach-1", Name: "Cohort"}
	for i := 1; i <= 5; i++ {
		g.Members = append(g.Members, models.GroupMember{
			ClientID: fmt.Sprintf("client-%d", i),
			UserID:   fmt.Sprintf("user-%d", i),
		})
	}
	return g
}

func TestFanoutIndividualBooking(t *testing.T) {
	roster := &fakeRoster{clients: map[string]*models.Client{
		"client-1": {ID: "client-1", UserID: "user-1"},
	}}
	sender := &recordingSender{}
	svc := NewNotificationService(roster, sender)

	booking := groupBooking()
	booking.GroupID = ""
	booking.ClientID = "client-1"

	report := svc.NotifyBookingScheduled(context.Background(), booking)
	assert.True(t, report.AllDelivered())
	assert.Equal(t, 2, report.Delivered)
	assert.ElementsMatch(t, []string{"coach-1", "user-1"}, sender.sent)
}

func TestFanoutGroupOneMemberFailsOthersDeliver(t *testing.T) {
	roster := &fakeRoster{groups: map[string]*models.Group{"group-1": fiveMemberGroup()}}
	sender := &recordingSender{failFor: map[string]bool{"user-3": true}}
	svc := NewNotificationService(roster, sender)

	report := svc.NotifyBookingScheduled(context.Background(), groupBooking())

	// Coach and four of the five members are reached.
	assert.Equal(t, 5, report.Delivered)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "user-3", report.Failures[0].UserID)
	assert.ElementsMatch(t, []string{"coach-1", "user-1", "user-2", "user-4", "user-5"}, sender.sent)
}

func TestFanoutRosterLookupFailureDropsRecipientOnly(t *testing.T) {
	roster := &fakeRoster{}
	sender := &recordingSender{}
	svc := NewNotificationService(roster, sender)

	report := svc.NotifyBookingScheduled(context.Background(), groupBooking())
	assert.Equal(t, 1, report.Delivered, "the coach is still notified")
	assert.ElementsMatch(t, []string{"coach-1"}, sender.sent)
}

func TestReminderPayloadType(t *testing.T) {
	roster := &fakeRoster{groups: map[string]*models.Group{"group-1": fiveMemberGroup()}}

	var got models.NotificationPayload
	var mu sync.Mutex
	sender := senderFunc(func(_ context.Context, _ string, payload models.NotificationPayload) error {
		mu.Lock()
		defer mu.Unlock()
		got = payload
		return nil
	})
	svc := NewNotificationService(roster, sender)

	report := svc.NotifySessionReminder(context.Background(), groupBooking())
	assert.True(t, report.AllDelivered())
	assert.Equal(t, models.NotificationSessionReminder, got.Type)
	assert.Equal(t, "bk-1", got.Data["bookingId"])
}

func TestSessionUpdatedPayloadCarriesNewStatus(t *testing.T) {
	roster := &fakeRoster{clients: map[string]*models.Client{
		"client-1": {ID: "client-1", UserID: "user-1"},
	}}

	var got models.NotificationPayload
	var mu sync.Mutex
	sender := senderFunc(func(_ context.Context, _ string, payload models.NotificationPayload) error {
		mu.Lock()
		defer mu.Unlock()
		got = payload
		return nil
	})
	svc := NewNotificationService(roster, sender)

	booking := groupBooking()
	booking.GroupID = ""
	booking.ClientID = "client-1"
	booking.Status = models.StatusCancelled

	report := svc.NotifySessionUpdated(context.Background(), booking)
	assert.True(t, report.AllDelivered())
	assert.Equal(t, 2, report.Delivered)
	assert.Equal(t, models.NotificationSessionUpdated, got.Type)
	assert.Equal(t, models.StatusCancelled, got.Data["status"])
	assert.Equal(t, "bk-1", got.Data["bookingId"])
}

type senderFunc func(ctx context.Context, userID string, payload models.NotificationPayload) error

func (f senderFunc) Send(ctx context.Context, userID string, payload models.NotificationPayload) error {
	return f(ctx, userID, payload)
}
