package episode

import "time"

// DisplayDateFormat is the layout used everywhere a recording date is shown
// or typed: two-digit day, two-digit month, four-digit year, dot-separated.
const DisplayDateFormat = "02.01.2006"

// StorageDateFormat is the ISO layout used in the database.
const StorageDateFormat = "2006-01-02"

// ParseRecordingDate parses a recording date from user input. Both the
// display layout (dd.mm.yyyy) and the ISO layout are accepted. Anything
// unparseable falls back to today's date instead of rejecting the edit;
// data entry is never blocked by a bad date.
func ParseRecordingDate(s string) time.Time {
	for _, layout := range []string{DisplayDateFormat, StorageDateFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return Today()
}

// Today returns the current date truncated to midnight UTC, matching the
// storage granularity of recording dates.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
