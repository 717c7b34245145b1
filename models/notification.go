package models

import "time"

// Notification types emitted by the scheduling engine.
const (
	NotificationSessionScheduled = "session_scheduled"
	NotificationSessionReminder  = "session_reminder"
	NotificationSessionUpdated   = "session_updated"
)

// Notification is a persisted in-app notification record.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"user_id" json:"userId"`
	Type      string            `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
}

// NotificationPayload is the content dispatched to a single recipient.
type NotificationPayload struct {
	Type  string            `json:"type"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// ReminderPayload is the asynq task body for a scheduled session reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	FireAt    string `json:"fireAt"` // RFC3339
}
