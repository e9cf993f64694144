package datetime

import "time"

// iso8601Layout is the machine format used in the storage files and in the
// assistant's JSON actions. Always UTC with a trailing Z.
const iso8601Layout = "2006-01-02T15:04:05Z"

// Fallback formats accepted for due-date input after natural-language
// parsing fails, tried in order. Date-only forms land at midnight UTC.
var dueDateFormats = []string{
	iso8601Layout,
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// FormatISO8601 renders t as an ISO-8601 UTC timestamp.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601Layout)
}

// ParseISO8601 parses an ISO-8601 UTC timestamp.
func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(iso8601Layout, s)
}

// ParseDueDate turns free text from a due-date prompt into a timestamp.
// Natural language is tried first, then the machine formats. The zero time
// means no due date; empty input is valid and means exactly that.
func ParseDueDate(s string, now time.Time) time.Time {
	if s == "" {
		return time.Time{}
	}

	if t, ok := ParseNaturalDate(s, now); ok {
		return t
	}

	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
