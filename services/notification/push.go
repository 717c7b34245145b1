package notification

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationRepo "suplient/database/repository/notification"
	rosterRepo "suplient/database/repository/roster"
	"suplient/models"
	"suplient/utils"
)

// PushSender persists an in-app notification record and delivers an FCM push
// on top of it. The record is written first so the notification survives even
// when the push cannot be delivered.
type PushSender struct {
	Roster        rosterRepo.Repository
	Notifications notificationRepo.Repository
}

func NewPushSender(roster rosterRepo.Repository, notifications notificationRepo.Repository) *PushSender {
	return &PushSender{Roster: roster, Notifications: notifications}
}

func (s *PushSender) Send(ctx context.Context, userID string, payload models.NotificationPayload) error {
	record := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      payload.Type,
		Title:     payload.Title,
		Body:      payload.Body,
		Data:      payload.Data,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Notifications.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to persist notification for user %s: %w", userID, err)
	}

	user, err := s.Roster.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if user.FCMToken == "" || utils.FCMClient == nil {
		// In-app record only; nothing to push to.
		utils.GetLogger().Debug("push skipped, no device token", zap.String("userID", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "sessions",
				Sound:     "default",
			},
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push to user %s: %w", userID, err)
	}
	return nil
}
