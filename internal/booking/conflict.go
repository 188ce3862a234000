package booking

import (
	"context"
	"fmt"
	"time"
)

// checkEaterAvailability scans every active reservation the eater is
// involved in (as host or attendee) on the date and returns a rule
// violation describing the first one that overlaps the requested
// window. Stored reservation times that fail to parse are skipped:
// the engine wrote them, so a parse failure means corrupt historical
// data, and one bad row must not block an otherwise valid booking.
func (e *Engine) checkEaterAvailability(ctx context.Context, eaterID uint64, date time.Time, window Window) error {
	reservations, err := e.store.ActiveByEaterDate(ctx, eaterID, date)
	if err != nil {
		return Persistencef("Error loading reservations: %v", err)
	}
	for _, r := range reservations {
		w, ok := parseWindow(r.StartTime, r.EndTime)
		if !ok {
			continue
		}
		if window.Overlaps(w) {
			name := fmt.Sprintf("Restaurant ID %d", r.RestaurantID)
			if rest, err := e.store.GetRestaurant(ctx, r.RestaurantID); err == nil && rest != nil {
				name = rest.Name
			}
			return RuleViolationf("You already have a reservation at %s from %s to %s on this date.",
				name, r.StartTime, r.EndTime)
		}
	}
	return nil
}
