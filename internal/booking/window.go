// Package booking implements the availability and booking engine:
// time-window overlap math, dietary restriction matching, operating
// hours filtering, best-fit table allocation, cross-restaurant
// conflict detection and the orchestration that ties them into an
// all-or-nothing booking decision.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultDurationHours is the length of a reservation when the caller
// does not supply one.
const DefaultDurationHours = 2

// Clock is a same-day wall-clock instant at minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock converts a time string into a Clock. Accepted forms are
// "H", "H:MM" and "HH:MM"; a trailing seconds component ("HH:MM:SS")
// is tolerated and ignored. Hours must be 0-23 and minutes 0-59.
func ParseClock(s string) (Clock, error) {
	if s == "" {
		return Clock{}, InvalidInputf("Time string cannot be empty")
	}
	parts := strings.Split(s, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, InvalidInputf("Invalid time format: %s. Use HH:MM format.", s)
	}
	minute := 0
	if len(parts) > 1 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return Clock{}, InvalidInputf("Invalid time format: %s. Use HH:MM format.", s)
		}
	}
	if hour < 0 || hour > 23 {
		return Clock{}, InvalidInputf("Invalid hours value: %d. Must be between 0-23.", hour)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, InvalidInputf("Invalid minutes value: %d. Must be between 0-59.", minute)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// minutes returns the offset from midnight, the canonical form used
// for ordering and overlap checks.
func (c Clock) minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is strictly earlier in the day than o.
func (c Clock) Before(o Clock) bool { return c.minutes() < o.minutes() }

// After reports whether c is strictly later in the day than o.
func (c Clock) After(o Clock) bool { return c.minutes() > o.minutes() }

// String renders the clock as a zero-padded "HH:MM" string. All times
// the engine persists go through this, so stored values are always
// lexicographically comparable.
func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Window is the half-open interval [Start, End) on a single day.
type Window struct {
	Start Clock
	End   Clock
}

// Overlaps reports whether two windows intersect. Boundaries touching
// (w.End == o.Start) do not overlap, so back-to-back bookings on the
// same table are permitted.
func (w Window) Overlaps(o Window) bool {
	return w.Start.minutes() < o.End.minutes() && w.End.minutes() > o.Start.minutes()
}

// WindowAfter builds the reservation window starting at start and
// lasting the given whole number of hours. A window whose end would
// cross midnight is rejected rather than silently wrapped: the
// overlap predicate assumes monotonic same-day windows.
func WindowAfter(start Clock, durationHours int) (Window, error) {
	endHour := start.Hour + durationHours
	if endHour >= 24 {
		return Window{}, RuleViolationf("Reservation ending at %02d:%02d would extend past midnight", endHour%24, start.Minute)
	}
	return Window{Start: start, End: Clock{Hour: endHour, Minute: start.Minute}}, nil
}

// parseWindow converts a stored start/end pair into a Window. Used
// when scanning persisted reservations; callers skip records whose
// stored times fail to parse.
func parseWindow(start, end string) (Window, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, false
	}
	return Window{Start: s, End: e}, true
}
