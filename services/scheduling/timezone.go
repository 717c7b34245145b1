package scheduling

import (
	"fmt"
	"time"

	"suplient/models"
)

// WallClock is a calendar date plus wall-clock time in some zone. Exact is
// false when the requested zone was unrecognized and the conversion degraded
// to an identity mapping; callers should treat such results as low-confidence
// rather than failing the whole request.
type WallClock struct {
	Date  string // "YYYY-MM-DD"
	Time  string // "HH:MM"
	Exact bool
}

// ZoneKnown reports whether the IANA zone name resolves on this system.
func ZoneKnown(zone string) bool {
	if zone == "" {
		return false
	}
	_, err := time.LoadLocation(zone)
	return err == nil
}

// ToLocal converts a stored UTC (date, time) pair into the viewer's zone.
// The conversion may cross a midnight boundary, so callers must group by the
// converted local date, never the UTC date. An unrecognized zone degrades to
// returning the instant unchanged with Exact=false.
func ToLocal(utcDate, utcTime, zone string) (WallClock, error) {
	t, err := parseWall(utcDate, utcTime, time.UTC)
	if err != nil {
		return WallClock{}, err
	}
	loc, locErr := time.LoadLocation(zone)
	if locErr != nil {
		return WallClock{Date: utcDate, Time: utcTime, Exact: false}, nil
	}
	local := t.In(loc)
	return WallClock{
		Date:  local.Format(models.DateLayout),
		Time:  local.Format(models.TimeLayout),
		Exact: true,
	}, nil
}

// ToUTC converts a viewer-local (date, time) pair back to UTC for storage.
// The inverse of ToLocal; an unrecognized zone again degrades to identity.
func ToUTC(localDate, localTime, zone string) (WallClock, error) {
	loc, locErr := time.LoadLocation(zone)
	if locErr != nil {
		// Validate the pair even when the zone is unknown.
		if _, err := parseWall(localDate, localTime, time.UTC); err != nil {
			return WallClock{}, err
		}
		return WallClock{Date: localDate, Time: localTime, Exact: false}, nil
	}
	t, err := parseWall(localDate, localTime, loc)
	if err != nil {
		return WallClock{}, err
	}
	utc := t.UTC()
	return WallClock{
		Date:  utc.Format(models.DateLayout),
		Time:  utc.Format(models.TimeLayout),
		Exact: true,
	}, nil
}

func parseWall(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// instantLocalParts converts an absolute instant into (local date, minute of
// local day) for the given zone, degrading to UTC components when the zone is
// unrecognized.
func instantLocalParts(t time.Time, zone string) (string, int) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return local.Format(models.DateLayout), local.Hour()*60 + local.Minute()
}
