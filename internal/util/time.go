package util

import "time"

// FormatTime formats a time in a human-readable way.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatDate formats just the date part.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseISO parses an ISO-8601 (RFC 3339) timestamp. The second return
// value is false if s is empty or not parseable.
func ParseISO(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Date-only values show up in hand-written import files.
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// FormatISO renders a timestamp in the wire format (RFC 3339, UTC).
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of whole days from now until t, rounded up
// and never below 1.
func DaysUntil(now, t time.Time) int {
	days := int(t.Sub(now).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
