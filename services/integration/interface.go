package integration

import (
	"context"
	"errors"
	"time"

	"suplient/models"
)

// ErrProviderUnavailable marks a provider call that failed or timed out. The
// booking itself is never affected by it.
var ErrProviderUnavailable = errors.New("meeting provider unavailable")

// ErrTokenRejected is raised when a provider refuses the stored access token.
// The integration record is deactivated so the coach is prompted to reconnect
// instead of every request retrying a dead token.
var ErrTokenRejected = errors.New("provider rejected access token")

// Provider is the capability contract for one external platform: a busy-event
// feed and meeting creation. Platforms without a calendar feed return an empty
// event set.
type Provider interface {
	Platform() string
	ListBusyEvents(ctx context.Context, integ *models.Integration, from, to time.Time) ([]models.CalendarEvent, error)
	CreateMeeting(ctx context.Context, integ *models.Integration, details models.MeetingDetails, attendees []string) (*models.MeetingInfo, error)
}

// Meeting attachment outcomes.
const (
	AttachAttached     = "attached"
	AttachSkipped      = "skipped"
	AttachNotConnected = "not_connected"
	AttachUnavailable  = "provider_unavailable"
	AttachLinkDropped  = "link_not_recorded"
)

// OrchestrationResult reports how a meeting-attachment attempt ended. Every
// outcome other than AttachAttached leaves the booking without a link, but the
// booking record itself always survives.
type OrchestrationResult struct {
	BookingID string `json:"bookingId"`
	Platform  string `json:"platform"`
	Status    string `json:"status"`
	JoinLink  string `json:"joinLink,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Service exposes the external-platform side of the engine: the cached
// calendar feed consumed by availability, and best-effort meeting attachment.
type Service interface {
	EventsAround(ctx context.Context, coachID, localDate, zone string) ([]models.CalendarEvent, bool, error)
	AttachMeeting(ctx context.Context, bookingID string) (*OrchestrationResult, error)
}
