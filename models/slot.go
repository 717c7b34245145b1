package models

// Busy interval sources.
const (
	SourceInternalBooking  = "internal-booking"
	SourceExternalCalendar = "external-calendar"
	SourceAllDayBlock      = "all-day-block"
)

// MinutesPerDay bounds the minute-of-day space for busy intervals.
const MinutesPerDay = 24 * 60

// BusyInterval is a half-open [Start, End) minute range of the viewer's local
// day during which the coach is committed. Recomputed on every query.
type BusyInterval struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Source string `json:"source"`
}

// ConflictEntry describes one existing booking that overlaps a requested slot.
type ConflictEntry struct {
	BookingID string `json:"bookingId"`
	Label     string `json:"label"` // human-readable subject, e.g. the session title
	Start     int    `json:"start"` // minutes of the requester's local day
	End       int    `json:"end"`
}

// ConflictReport is returned when a commit is rejected because the requested
// interval is no longer free.
type ConflictReport struct {
	Conflicts []ConflictEntry `json:"conflicts"`
}
