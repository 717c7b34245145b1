package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotGranularityMinutes is the fixed spacing of the daily start-time catalog.
const SlotGranularityMinutes = 30

// The catalog covers 01:00 through 23:30 inclusive. 23:59 is never a valid
// start because the booking window does not wrap past midnight.
const (
	firstSlotMinute = 60
	lastSlotMinute  = 23*60 + 30
)

// Catalog returns the ordered list of allowed daily start times, as "HH:MM"
// wall-clock strings. The catalog is the single source of truth for what start
// times exist at all; both the availability filter and the commit path draw
// from it. Output is deterministic and day-independent.
func Catalog() []string {
	slots := make([]string, 0, (lastSlotMinute-firstSlotMinute)/SlotGranularityMinutes+1)
	for m := firstSlotMinute; m <= lastSlotMinute; m += SlotGranularityMinutes {
		slots = append(slots, FormatMinute(m))
	}
	return slots
}

// ToMinutes parses an "HH:MM" wall-clock string into minutes from midnight.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

// FormatMinute renders minutes from midnight as "HH:MM".
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
