package datetime

import "time"

// Clock abstracts time.Now so callers can pin "now" in tests. The parser
// functions take an explicit reference time instead; Clock is for the
// components that need to keep asking what time it is.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
