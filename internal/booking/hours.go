package booking

import "github.com/iliyamo/restaurant-table-reservation/internal/model"

// openAt reports whether the restaurant is open at the given instant.
// Bounds are inclusive on both ends (a restaurant closing at 20:00
// still admits a 20:00 start), and only the start instant is checked:
// the computed end time is not re-validated against closing time.
// A nil hours record means the restaurant is never open.
func openAt(hours *model.OperatingHours, at Clock) bool {
	if hours == nil {
		return false
	}
	opening, err := ParseClock(hours.OpeningTime)
	if err != nil {
		return false
	}
	closing, err := ParseClock(hours.ClosingTime)
	if err != nil {
		return false
	}
	return !opening.After(at) && !closing.Before(at)
}
