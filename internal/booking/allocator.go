package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// allocateTable finds the smallest table at the restaurant that fits
// the party and has no active reservation overlapping the window.
//
// Best-fit: candidates arrive ordered ascending by capacity and the
// first free one wins, minimizing wasted seats per booking at the cost
// of no lookahead across future bookings. The two failure modes are
// distinct rule violations so callers can tell "no table is ever big
// enough" from "the big-enough tables are taken right now".
func (e *Engine) allocateTable(ctx context.Context, restaurantID uint64, partySize uint32, date time.Time, window Window) (*model.Table, error) {
	tables, err := e.store.TablesFitting(ctx, restaurantID, partySize)
	if err != nil {
		return nil, Persistencef("Error loading tables: %v", err)
	}
	if len(tables) == 0 {
		return nil, RuleViolationf("No tables available for that party size")
	}

	reservations, err := e.store.ActiveByRestaurantDate(ctx, restaurantID, date)
	if err != nil {
		return nil, Persistencef("Error loading reservations: %v", err)
	}

	// Tables whose existing bookings overlap the requested window.
	// Stored times are engine-produced; anything unparsable is stale
	// data and is skipped rather than failing the whole allocation.
	reserved := make(map[uint64]struct{})
	for _, r := range reservations {
		w, ok := parseWindow(r.StartTime, r.EndTime)
		if !ok {
			continue
		}
		if window.Overlaps(w) {
			reserved[r.TableID] = struct{}{}
		}
	}

	for i := range tables {
		if _, taken := reserved[tables[i].ID]; !taken {
			return &tables[i], nil
		}
	}
	return nil, RuleViolationf("No tables available for that party size at the requested time")
}

// hasFreeTable is the existence-check variant used by availability
// search: same algorithm, but only a yes/no answer and no distinction
// between the two failure reasons.
func (e *Engine) hasFreeTable(ctx context.Context, restaurantID uint64, partySize uint32, date time.Time, window Window) (bool, error) {
	_, err := e.allocateTable(ctx, restaurantID, partySize, date, window)
	if err != nil {
		if KindOf(err) == KindRuleViolation {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
