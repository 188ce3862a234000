package booking

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ErrCommitConflict is returned by Store.CreateReservation when the
// in-transaction re-validation finds that a concurrent booking claimed
// the table or a party member's window after the engine's checks ran.
var ErrCommitConflict = errors.New("booking: commit conflict")

// Candidate bundles a restaurant with the associations the search path
// needs, so filtering stays an explicit in-engine step instead of a
// hidden object-graph traversal.
type Candidate struct {
	Restaurant     model.Restaurant
	Hours          *model.OperatingHours // nil when no hours record exists
	EndorsementIDs []uint64
}

// EaterStore resolves eaters and their dietary restrictions.
type EaterStore interface {
	// GetEater returns the eater or nil when no such row exists.
	GetEater(ctx context.Context, id uint64) (*model.Eater, error)
	// RestrictionIDsForEaters returns the union of dietary restriction
	// IDs across the given eaters, deduplicated.
	RestrictionIDsForEaters(ctx context.Context, eaterIDs []uint64) ([]uint64, error)
}

// RestaurantStore resolves restaurants, their hours and the
// restriction→endorsement coverage mapping.
type RestaurantStore interface {
	// GetRestaurant returns the restaurant or nil when no such row exists.
	GetRestaurant(ctx context.Context, id uint64) (*model.Restaurant, error)
	// GetOperatingHours returns the hours row for a restaurant, or nil
	// when the restaurant has none.
	GetOperatingHours(ctx context.Context, restaurantID uint64) (*model.OperatingHours, error)
	// ListReservable returns every restaurant with accepts_reservations
	// set, with hours and endorsement IDs preloaded, in natural
	// retrieval order.
	ListReservable(ctx context.Context) ([]Candidate, error)
	// EndorsementIDsForRestrictions returns the distinct endorsement IDs
	// mapped to any of the given restrictions.
	EndorsementIDsForRestrictions(ctx context.Context, restrictionIDs []uint64) ([]uint64, error)
}

// TableStore resolves tables by capacity.
type TableStore interface {
	// TablesFitting returns the restaurant's tables with
	// capacity >= minCapacity, ordered ascending by capacity.
	TablesFitting(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error)
}

// ReservationStore persists reservations and answers the date-scoped
// queries the conflict and allocation checks run on.
type ReservationStore interface {
	// GetReservation returns the reservation (active or not) or nil
	// when no such row exists.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// ActiveByRestaurantDate returns all active reservations for the
	// restaurant on the given date.
	ActiveByRestaurantDate(ctx context.Context, restaurantID uint64, date time.Time) ([]model.Reservation, error)
	// ActiveByEaterDate returns all active reservations on the date
	// where the eater is the host or an attendee, deduplicated by
	// reservation identity.
	ActiveByEaterDate(ctx context.Context, eaterID uint64, date time.Time) ([]model.Reservation, error)
	// AttendeeIDs returns the eater IDs attending a reservation.
	AttendeeIDs(ctx context.Context, reservationID uint64) ([]uint64, error)
	// CreateReservation atomically persists the reservation and its
	// attendee set, re-validating the table and party windows inside
	// the same transaction. A lost race returns ErrCommitConflict.
	// On success the reservation's ID and timestamps are populated.
	CreateReservation(ctx context.Context, res *model.Reservation, attendeeIDs []uint64) error
	// SetReservationInactive soft-deletes a reservation; calling it on
	// an already inactive row is a no-op.
	SetReservationInactive(ctx context.Context, id uint64) error
	// DeleteReservation removes the reservation and its attendee
	// associations permanently.
	DeleteReservation(ctx context.Context, id uint64) error
}

// Store is the full persistence contract the engine runs against.
type Store interface {
	EaterStore
	RestaurantStore
	TableStore
	ReservationStore
}
