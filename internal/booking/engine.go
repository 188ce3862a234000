package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

const dateLayout = "2006-01-02"

// Engine is the booking orchestrator. Every operation runs to
// completion against the store and returns either a decision or a
// kinded error; no partial state is ever persisted.
type Engine struct {
	store Store
	// now supplies "today" for the search date fallback; injectable
	// for tests.
	now func() time.Time
}

// NewEngine builds an engine over the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, now: time.Now}
}

// CreateRequest carries the inputs of a booking attempt.
type CreateRequest struct {
	HostID       uint64
	RestaurantID uint64
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM
	AttendeeIDs  []uint64
	GuestsCount  int
}

// SearchRequest carries the inputs of an availability search.
type SearchRequest struct {
	Time             string // HH:MM, required
	Date             string // YYYY-MM-DD, empty or malformed falls back to today
	EaterIDs         []uint64
	AdditionalGuests int
}

// Attendee is the slice of eater data exposed on a reservation detail.
type Attendee struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReservationDetail is the engine's read model of a committed
// reservation, with host, restaurant and attendee info resolved.
type ReservationDetail struct {
	ID             uint64     `json:"id"`
	HostID         uint64     `json:"host_id"`
	HostName       string     `json:"host_name"`
	RestaurantID   uint64     `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	TableID        uint64     `json:"table_id"`
	Date           string     `json:"date"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	PartySize      uint32     `json:"party_size"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	Attendees      []Attendee `json:"attendees"`
}

// CreateReservation validates, searches and commits a booking as one
// strictly sequential decision, short-circuiting on the first failed
// step. Nothing is written until every check has passed; the store's
// commit then re-validates inside its transaction so concurrent
// requests cannot both succeed.
func (e *Engine) CreateReservation(ctx context.Context, req CreateRequest) (*ReservationDetail, error) {
	// Step 1: the restaurant must exist and take reservations.
	restaurant, err := e.store.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, Persistencef("Error loading restaurant: %v", err)
	}
	if restaurant == nil {
		return nil, NotFoundf("Restaurant not found")
	}
	if !restaurant.AcceptsReservations {
		return nil, RuleViolationf("Restaurant does not accept reservations")
	}

	// Step 2: the host must exist.
	host, err := e.store.GetEater(ctx, req.HostID)
	if err != nil {
		return nil, Persistencef("Error loading eater: %v", err)
	}
	if host == nil {
		return nil, NotFoundf("Eater with ID %d not found", req.HostID)
	}

	// Step 3: every named attendee must resolve, failing on the first
	// missing ID.
	attendees := make([]*model.Eater, 0, len(req.AttendeeIDs))
	for _, id := range req.AttendeeIDs {
		a, err := e.store.GetEater(ctx, id)
		if err != nil {
			return nil, Persistencef("Error loading eater: %v", err)
		}
		if a == nil {
			return nil, NotFoundf("Attendee with ID %d not found", id)
		}
		attendees = append(attendees, a)
	}

	// Step 4: party size counts the host exactly once even when also
	// listed as an attendee.
	if req.GuestsCount < 0 {
		return nil, InvalidInputf("guests_count cannot be negative")
	}
	hostListed := false
	for _, a := range attendees {
		if a.ID == host.ID {
			hostListed = true
			break
		}
	}
	partySize := len(attendees) + req.GuestsCount
	if !hostListed {
		partySize++
	}

	// Step 5: date and operating hours.
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, InvalidInputf("Invalid date format. Use YYYY-MM-DD")
	}
	hours, err := e.store.GetOperatingHours(ctx, req.RestaurantID)
	if err != nil {
		return nil, Persistencef("Error loading restaurant hours: %v", err)
	}
	if hours == nil {
		return nil, RuleViolationf("Restaurant hours not available")
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	if !openAt(hours, start) {
		return nil, RuleViolationf("Restaurant is not open at %s", req.StartTime)
	}

	// Step 6: derive the window; midnight-crossing bookings are
	// rejected outright.
	window, err := WindowAfter(start, DefaultDurationHours)
	if err != nil {
		return nil, err
	}

	// Steps 7-8: the host, then each attendee in input order, must be
	// free everywhere in the system for this window.
	if err := e.checkEaterAvailability(ctx, host.ID, date, window); err != nil {
		return nil, err
	}
	for _, a := range attendees {
		if a.ID == host.ID {
			continue
		}
		if err := e.checkEaterAvailability(ctx, a.ID, date, window); err != nil {
			if KindOf(err) == KindRuleViolation {
				return nil, RuleViolationf("Attendee %s: %s", a.Name, err.Error())
			}
			return nil, err
		}
	}

	// Step 9: best-fit table.
	table, err := e.allocateTable(ctx, req.RestaurantID, uint32(partySize), date, window)
	if err != nil {
		return nil, err
	}

	// Step 10: commit. The attendee set always contains the host,
	// deduplicated.
	attendeeIDs := make([]uint64, 0, len(attendees)+1)
	attendeeIDs = append(attendeeIDs, host.ID)
	for _, a := range attendees {
		if a.ID != host.ID {
			attendeeIDs = append(attendeeIDs, a.ID)
		}
	}
	res := &model.Reservation{
		HostID:       host.ID,
		RestaurantID: restaurant.ID,
		TableID:      table.ID,
		Date:         date,
		StartTime:    window.Start.String(),
		EndTime:      window.End.String(),
		PartySize:    uint32(partySize),
		IsActive:     true,
	}
	if err := e.store.CreateReservation(ctx, res, attendeeIDs); err != nil {
		return nil, Persistencef("Error creating reservation: %v", err)
	}
	return e.detailFor(ctx, res)
}

// FindAvailableRestaurants returns the restaurants that are open at
// the requested time, cover the party's aggregated dietary
// restrictions, and have a fitting table free for the window.
// Results keep the store's natural retrieval order. The search is
// advisory: it commits nothing and may read a snapshot.
func (e *Engine) FindAvailableRestaurants(ctx context.Context, req SearchRequest) ([]model.Restaurant, error) {
	start, err := ParseClock(req.Time)
	if err != nil {
		return nil, err
	}
	window, err := WindowAfter(start, DefaultDurationHours)
	if err != nil {
		return nil, err
	}
	date := e.parseDateOrToday(req.Date)

	// Every named party member must exist; unnamed guests only count
	// toward the party size.
	for _, id := range req.EaterIDs {
		eater, err := e.store.GetEater(ctx, id)
		if err != nil {
			return nil, Persistencef("Error loading eater: %v", err)
		}
		if eater == nil {
			return nil, NotFoundf("Eater with ID %d not found", id)
		}
	}
	if req.AdditionalGuests < 0 {
		return nil, InvalidInputf("additional_guests cannot be negative")
	}
	partySize := len(req.EaterIDs) + req.AdditionalGuests

	restrictions, err := e.store.RestrictionIDsForEaters(ctx, req.EaterIDs)
	if err != nil {
		return nil, Persistencef("Error loading dietary restrictions: %v", err)
	}
	var required []uint64
	if len(restrictions) > 0 {
		required, err = e.store.EndorsementIDsForRestrictions(ctx, restrictions)
		if err != nil {
			return nil, Persistencef("Error loading endorsements: %v", err)
		}
	}

	candidates, err := e.store.ListReservable(ctx)
	if err != nil {
		return nil, Persistencef("Error loading restaurants: %v", err)
	}

	available := make([]model.Restaurant, 0, len(candidates))
	for _, c := range candidates {
		if !openAt(c.Hours, start) {
			continue
		}
		if len(restrictions) > 0 && !coversRestrictions(c.EndorsementIDs, required) {
			continue
		}
		free, err := e.hasFreeTable(ctx, c.Restaurant.ID, uint32(partySize), date, window)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, c.Restaurant)
		}
	}
	return available, nil
}

// GetReservation returns the detail of a reservation. Soft-deleted
// reservations are reported as not found unless includeInactive is
// set; hard-deleted ones are gone either way.
func (e *Engine) GetReservation(ctx context.Context, id uint64, includeInactive bool) (*ReservationDetail, error) {
	res, err := e.store.GetReservation(ctx, id)
	if err != nil {
		return nil, Persistencef("Error loading reservation: %v", err)
	}
	if res == nil || (!includeInactive && !res.IsActive) {
		return nil, NotFoundf("Reservation not found")
	}
	return e.detailFor(ctx, res)
}

// DeleteReservation cancels a reservation. Soft delete flips
// is_active and keeps the row for history; repeating it is a no-op
// that still succeeds. Hard delete removes the reservation and its
// attendee associations permanently; repeating it reports not found.
func (e *Engine) DeleteReservation(ctx context.Context, id uint64, softDelete bool) (string, error) {
	res, err := e.store.GetReservation(ctx, id)
	if err != nil {
		return "", Persistencef("Error loading reservation: %v", err)
	}
	if res == nil {
		return "", NotFoundf("Reservation not found")
	}
	if softDelete {
		if err := e.store.SetReservationInactive(ctx, id); err != nil {
			return "", Persistencef("Error deleting reservation: %v", err)
		}
		return "Reservation marked as deleted", nil
	}
	if err := e.store.DeleteReservation(ctx, id); err != nil {
		return "", Persistencef("Error deleting reservation: %v", err)
	}
	return "Reservation permanently deleted", nil
}

// detailFor assembles the read model through explicit store lookups.
func (e *Engine) detailFor(ctx context.Context, res *model.Reservation) (*ReservationDetail, error) {
	det := &ReservationDetail{
		ID:           res.ID,
		HostID:       res.HostID,
		RestaurantID: res.RestaurantID,
		TableID:      res.TableID,
		Date:         res.Date.Format(dateLayout),
		StartTime:    res.StartTime,
		EndTime:      res.EndTime,
		PartySize:    res.PartySize,
		IsActive:     res.IsActive,
		Attendees:    []Attendee{},
	}
	if !res.CreatedAt.IsZero() {
		t := res.CreatedAt
		det.CreatedAt = &t
	}
	if host, err := e.store.GetEater(ctx, res.HostID); err == nil && host != nil {
		det.HostName = host.Name
	}
	if rest, err := e.store.GetRestaurant(ctx, res.RestaurantID); err == nil && rest != nil {
		det.RestaurantName = rest.Name
	}
	ids, err := e.store.AttendeeIDs(ctx, res.ID)
	if err != nil {
		return nil, Persistencef("Error loading attendees: %v", err)
	}
	for _, id := range ids {
		a, err := e.store.GetEater(ctx, id)
		if err != nil || a == nil {
			continue
		}
		det.Attendees = append(det.Attendees, Attendee{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	return det, nil
}

// parseDateOrToday parses YYYY-MM-DD and falls back to the current
// date when the string is empty or malformed. The fallback is
// long-standing boundary behavior for availability search.
func (e *Engine) parseDateOrToday(s string) time.Time {
	if s != "" {
		if d, err := time.Parse(dateLayout, s); err == nil {
			return d
		}
	}
	n := e.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
