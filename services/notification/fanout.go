package notification

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"suplient/models"
	"suplient/utils"
)

func (s *DefaultNotificationService) NotifyBookingScheduled(ctx context.Context, booking *models.Booking) *FanoutReport {
	payload := models.NotificationPayload{
		Type:  models.NotificationSessionScheduled,
		Title: "Session scheduled",
		Body:  fmt.Sprintf("%s on %s at %s", booking.Title, booking.SessionDate, booking.SessionTime),
		Data: map[string]string{
			"bookingId": booking.ID,
			"date":      booking.SessionDate,
			"time":      booking.SessionTime,
		},
	}
	return s.fanout(ctx, s.recipients(ctx, booking), payload)
}

func (s *DefaultNotificationService) NotifySessionReminder(ctx context.Context, booking *models.Booking) *FanoutReport {
	payload := models.NotificationPayload{
		Type:  models.NotificationSessionReminder,
		Title: "Upcoming session",
		Body:  fmt.Sprintf("%s starts at %s", booking.Title, booking.SessionTime),
		Data: map[string]string{
			"bookingId": booking.ID,
			"date":      booking.SessionDate,
			"time":      booking.SessionTime,
		},
	}
	return s.fanout(ctx, s.recipients(ctx, booking), payload)
}

func (s *DefaultNotificationService) NotifySessionUpdated(ctx context.Context, booking *models.Booking) *FanoutReport {
	payload := models.NotificationPayload{
		Type:  models.NotificationSessionUpdated,
		Title: "Session updated",
		Body:  fmt.Sprintf("%s on %s is now %s", booking.Title, booking.SessionDate, booking.Status),
		Data: map[string]string{
			"bookingId": booking.ID,
			"date":      booking.SessionDate,
			"time":      booking.SessionTime,
			"status":    booking.Status,
		},
	}
	return s.fanout(ctx, s.recipients(ctx, booking), payload)
}

// recipients resolves the booking's participants to user IDs: the coach plus
// either the individual client or every group member. Roster lookups that fail
// drop that recipient only.
func (s *DefaultNotificationService) recipients(ctx context.Context, booking *models.Booking) []string {
	logger := utils.GetLogger()

	ids := []string{booking.CoachID}
	switch {
	case booking.ClientID != "":
		client, err := s.Roster.GetClientByID(ctx, booking.ClientID)
		if err != nil {
			logger.Warn("client lookup failed during fanout",
				zap.String("clientID", booking.ClientID), zap.Error(err))
			break
		}
		ids = append(ids, client.UserID)
	case booking.GroupID != "":
		group, err := s.Roster.GetGroupByID(ctx, booking.GroupID)
		if err != nil {
			logger.Warn("group lookup failed during fanout",
				zap.String("groupID", booking.GroupID), zap.Error(err))
			break
		}
		for _, member := range group.Members {
			ids = append(ids, member.UserID)
		}
	}
	return ids
}

// fanout sends to every recipient independently. One failed send never stops
// the others; failures are collected into the report.
func (s *DefaultNotificationService) fanout(ctx context.Context, userIDs []string, payload models.NotificationPayload) *FanoutReport {
	report := &FanoutReport{}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			err := s.Sender.Send(ctx, userID, payload)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures = append(report.Failures, FanoutFailure{UserID: userID, Reason: err.Error()})
				return
			}
			report.Delivered++
		}(userID)
	}
	wg.Wait()

	if !report.AllDelivered() {
		utils.GetLogger().Warn("notification fanout completed with failures",
			zap.Int("delivered", report.Delivered),
			zap.Int("failed", len(report.Failures)))
	}
	return report
}
