package datetime

import (
	"strings"
	"time"
)

// The natural-language parser understands the handful of expressions people
// actually type into a due-date prompt: "tomorrow 2pm", "in 3 days",
// "next monday", "may 20", "2:30pm". It is a set of small recognizers tried
// in a fixed order against a snapshot of "now"; the first one that matches
// wins, and a recognizer that starts matching but fails validation fails the
// whole parse rather than falling through to the next one.

// Weekday and month names, matched by their first three letters.
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// instant is the date/time value a recognizer fills in field by field before
// it is finalized into a time.Time. Months are table indices (0 = January).
// time.Date normalizes out-of-range fields, so "feb 31" or a day pushed past
// the end of the month comes out as the overflowed calendar date.
type instant struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	second int
}

func instantFrom(t time.Time) instant {
	return instant{
		year:   t.Year(),
		month:  int(t.Month()) - 1,
		day:    t.Day(),
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
	}
}

func (in instant) time() time.Time {
	return time.Date(in.year, time.Month(in.month+1), in.day,
		in.hour, in.minute, in.second, 0, time.Local)
}

// offsets is what the relative recognizer produces. The day count is added
// to the current date; hours and minutes are a time of day written into the
// result outright. That makes "tomorrow" mean tomorrow at 9:00 — and it
// makes "in 2 hours" mean 02:00 today, not two hours from now. Surprising,
// but it is what this grammar has always meant and what its users expect.
type offsets struct {
	days    int
	hours   int
	minutes int
}

// ParseNaturalDate parses a natural-language date expression relative to now.
// It tries relative phrases first, then calendar dates, then a bare time of
// day on today's date. The returned time is meaningless when ok is false.
func ParseNaturalDate(input string, now time.Time) (t time.Time, ok bool) {
	in := instantFrom(now)

	off, matched, abort := parseRelative(input, now)
	if abort {
		return time.Time{}, false
	}
	if matched {
		in.day += off.days
		in.hour = off.hours
		in.minute = off.minutes
		in.second = 0
		return in.time(), true
	}

	if parseCalendarDate(input, now, &in) {
		return in.time(), true
	}

	if parseClock(input, &in) {
		return in.time(), true
	}

	return time.Time{}, false
}

// ParseTimeToday parses a bare time of day ("2pm", "14:30") onto today's
// date. A time that has already passed is taken to mean the same time
// tomorrow.
func ParseTimeToday(input string, now time.Time) (time.Time, bool) {
	in := instantFrom(now)
	if !parseClock(input, &in) {
		return time.Time{}, false
	}
	t := in.time()
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

// FormatNaturalDate renders a timestamp as a short human label relative to
// now: "Today at 2:30 PM", "Tomorrow at 9:00 AM", a weekday name within the
// week, or "Jan 02" beyond that.
//
// Known limitation: the day difference is computed from day-of-year, so the
// labels are wrong across a year boundary and in leap years (a date exactly
// one year out renders as "Today"). The output is display-only and is not
// re-parseable by ParseNaturalDate.
func FormatNaturalDate(t time.Time, now time.Time) string {
	daysDiff := (t.YearDay() - now.YearDay() + 365) % 365
	clock := t.Format("3:04 PM")

	switch {
	case daysDiff == 0:
		return "Today at " + clock
	case daysDiff == 1:
		return "Tomorrow at " + clock
	case daysDiff < 7:
		return t.Format("Monday") + " at " + clock
	default:
		return t.Format("Jan 02") + " at " + clock
	}
}

// parseRelative recognizes "tomorrow", "in N <unit>", and "next <weekday>".
// abort reports that the input committed to one of these forms but failed
// validation ("in xyz days"); the caller must not try other recognizers.
func parseRelative(s string, now time.Time) (off offsets, matched, abort bool) {
	i := skipSpace(s, 0)

	if hasPrefixFold(s, i, "tomorrow") {
		return offsets{days: 1, hours: 9}, true, false
	}

	if hasPrefixFold(s, i, "in ") {
		i += 3
		i = skipSpace(s, i)

		n, i, ok := scanInt(s, i)
		if !ok {
			return offsets{}, false, true
		}
		i = skipSpace(s, i)

		switch {
		case hasPrefixFold(s, i, "day") || charAt(s, i) == 'd':
			// A day count lands on the 9 AM default, like every other
			// expression that names a date without a time.
			return offsets{days: n, hours: 9}, true, false
		case hasPrefixFold(s, i, "hour") || charAt(s, i) == 'h':
			return offsets{hours: n}, true, false
		case hasPrefixFold(s, i, "minute") || hasPrefixFold(s, i, "min") || charAt(s, i) == 'm':
			return offsets{minutes: n}, true, false
		default:
			return offsets{}, false, true
		}
	}

	if hasPrefixFold(s, i, "next ") {
		i += 5
		wd, ok := matchWeekday(s, skipSpace(s, i))
		if !ok {
			return offsets{}, false, true
		}
		return offsets{days: daysUntil(now.Weekday(), wd), hours: 9}, true, false
	}

	return offsets{}, false, false
}

// parseCalendarDate recognizes "<month> <day>" and bare weekday names,
// writing the resolved date and the 9 AM default time into in.
func parseCalendarDate(s string, now time.Time, in *instant) bool {
	if month, ok := matchMonth(s, 0); ok {
		i := 0
		for i < len(s) && !isDigit(s[i]) {
			i++
		}
		if i < len(s) {
			day, _, _ := scanInt(s, i)
			if day >= 1 && day <= 31 {
				in.month = month
				in.day = day
				in.hour, in.minute, in.second = 9, 0, 0
				// A month/day with no year means the next time that date
				// comes around: roll into next year if it already passed.
				if in.time().Before(now) {
					in.year++
				}
				return true
			}
		}
	}

	if wd, ok := matchWeekday(s, 0); ok {
		in.day += daysUntil(now.Weekday(), wd)
		in.hour, in.minute, in.second = 9, 0, 0
		return true
	}

	return false
}

// parseClock recognizes H[:MM][am|pm] and writes the result into in's time
// fields. Anything after a valid time is ignored.
func parseClock(s string, in *instant) bool {
	i := skipSpace(s, 0)

	hours, i, ok := scanInt(s, i)
	if !ok {
		return false
	}
	i = skipSpace(s, i)

	minutes := 0
	if charAt(s, i) == ':' {
		i++
		i = skipSpace(s, i)
		minutes, i, ok = scanInt(s, i)
		if !ok {
			return false
		}
	}
	i = skipSpace(s, i)

	isPM := false
	hasMeridiem := false
	switch charAt(s, i) {
	case 'a', 'A':
		hasMeridiem = true
	case 'p', 'P':
		hasMeridiem = true
		isPM = true
	}

	if hasMeridiem {
		if hours == 12 {
			// 12am is midnight, 12pm is noon.
			if isPM {
				hours = 12
			} else {
				hours = 0
			}
		} else if isPM && hours < 12 {
			hours += 12
		}
	} else if hours >= 0 && hours < 12 {
		// A bare hour below 12 reads as PM: "2:30" means 14:30. People
		// typing due times mean the afternoon far more often than the
		// small hours; "2:30am" spells out the exception.
		hours += 12
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return false
	}

	in.hour = hours
	in.minute = minutes
	in.second = 0
	return true
}

// daysUntil returns how many days ahead the next occurrence of target is,
// always 1..7: asking for the weekday it already is means next week's.
func daysUntil(from, target time.Weekday) int {
	d := (int(target) - int(from) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

func matchWeekday(s string, i int) (time.Weekday, bool) {
	for wd, name := range weekdayNames {
		if hasPrefixFold(s, i, name[:3]) {
			return time.Weekday(wd), true
		}
	}
	return 0, false
}

func matchMonth(s string, i int) (int, bool) {
	for m, name := range monthNames {
		if hasPrefixFold(s, i, name[:3]) {
			return m, true
		}
	}
	return 0, false
}

// Lexical helpers. The recognizers walk a byte index over the input; these
// are ASCII-only on purpose, matching what the prompt accepts.

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			i++
		default:
			return i
		}
	}
	return i
}

// hasPrefixFold reports whether s at offset i begins with lit, compared
// case-insensitively. It does not advance the cursor.
func hasPrefixFold(s string, i int, lit string) bool {
	if i < 0 || len(s)-i < len(lit) {
		return false
	}
	return strings.EqualFold(s[i:i+len(lit)], lit)
}

// scanInt consumes an optionally negated run of decimal digits, so
// "in -3 days" lands in the past. Magnitudes are capped well below
// overflow; anything that large fails range validation downstream anyway.
func scanInt(s string, i int) (val, next int, ok bool) {
	neg := false
	if charAt(s, i) == '-' && isDigit(charAt(s, i+1)) {
		neg = true
		i++
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		if val < 1<<28 {
			val = val*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, i, false
	}
	if neg {
		val = -val
	}
	return val, i, true
}

func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
