package models

// CalendarEvent is the engine's view of an externally hosted calendar entry.
// Start and End are RFC3339 instants for timed events; all-day events carry
// only their date and the AllDay flag.
type CalendarEvent struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	AllDay bool   `json:"allDay"`
}

// MeetingDetails describes the session a meeting resource is created for.
type MeetingDetails struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SessionDate string `json:"sessionDate"` // "YYYY-MM-DD", UTC
	SessionTime string `json:"sessionTime"` // "HH:MM", UTC
	Duration    int    `json:"duration"`    // minutes
}

// MeetingInfo is the result of creating a meeting resource with a provider.
type MeetingInfo struct {
	MeetingID string `json:"meetingId"`
	JoinLink  string `json:"joinLink"`
	Password  string `json:"password,omitempty"`
	Platform  string `json:"platform"`
}
