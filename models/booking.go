package models

import (
	"fmt"
	"time"
)

// Booking lifecycle statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Meeting platform identifiers.
const (
	PlatformNone           = "none"
	PlatformGoogleCalendar = "google_calendar"
	PlatformZoom           = "zoom"
	PlatformTeams          = "teams"
)

// Duration bounds in minutes.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480
)

// DateLayout and TimeLayout are the storage formats for the session date and
// wall-clock time. Both are stored as UTC; together they name an absolute instant.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking represents a confirmed coaching session record.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	CoachID         string    `bson:"coach_id" json:"coachId"`
	ClientID        string    `bson:"client_id,omitempty" json:"clientId,omitempty"` // set for individual sessions
	GroupID         string    `bson:"group_id,omitempty" json:"groupId,omitempty"`   // set for group sessions
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	SessionDate     string    `bson:"session_date" json:"sessionDate"` // "YYYY-MM-DD", UTC
	SessionTime     string    `bson:"session_time" json:"sessionTime"` // "HH:MM", UTC
	Duration        int       `bson:"duration" json:"duration"`        // minutes
	Status          string    `bson:"status" json:"status"`
	MeetingPlatform string    `bson:"meeting_platform" json:"meetingPlatform"`
	MeetingLink     string    `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
	OriginZone      string    `bson:"origin_zone,omitempty" json:"originZone,omitempty"` // IANA zone the booking was made from, for audit
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the structural invariants of a booking before any I/O.
func (b *Booking) Validate() error {
	if b.CoachID == "" {
		return fmt.Errorf("coach id is required")
	}
	if b.ClientID == "" && b.GroupID == "" {
		return fmt.Errorf("booking must have a client or a group subject")
	}
	if b.ClientID != "" && b.GroupID != "" {
		return fmt.Errorf("booking cannot have both a client and a group subject")
	}
	if _, err := time.Parse(DateLayout, b.SessionDate); err != nil {
		return fmt.Errorf("invalid session date %q: %w", b.SessionDate, err)
	}
	if _, err := time.Parse(TimeLayout, b.SessionTime); err != nil {
		return fmt.Errorf("invalid session time %q: %w", b.SessionTime, err)
	}
	if b.Duration < MinDurationMinutes || b.Duration > MaxDurationMinutes {
		return fmt.Errorf("duration %d out of range [%d, %d]", b.Duration, MinDurationMinutes, MaxDurationMinutes)
	}
	switch b.MeetingPlatform {
	case PlatformNone, PlatformGoogleCalendar, PlatformZoom, PlatformTeams:
	default:
		return fmt.Errorf("unknown meeting platform %q", b.MeetingPlatform)
	}
	return nil
}

// StartUTC returns the booking's absolute start instant.
func (b *Booking) StartUTC() (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+TimeLayout, b.SessionDate+" "+b.SessionTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date/time: %w", err)
	}
	return t.UTC(), nil
}

// ValidStatusTransition reports whether a lifecycle move is allowed.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case StatusScheduled:
		return to == StatusInProgress || to == StatusCancelled || to == StatusNoShow
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
	default:
		return false
	}
}
