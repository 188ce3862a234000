package model

import "time"

// Reservation records a committed booking of one table for a party on
// a given date. Start and end times are same-day clock strings; the
// end time is always derived from the start time plus the booking
// duration at creation and is never edited independently.
//
// The attendee set (host included) lives in the reservation_attendees
// table and is loaded separately.
//
// Fields:
//  ID           – primary key identifier.
//  HostID       – eater who created the reservation.
//  RestaurantID – restaurant being booked.
//  TableID      – allocated table; never zero once committed.
//  Date         – reservation date (date only, UTC).
//  StartTime    – zero-padded "HH:MM" start of the window.
//  EndTime      – zero-padded "HH:MM" end of the window (exclusive).
//  PartySize    – host + named attendees + unnamed guests, >= 1.
//  IsActive     – false once soft-deleted; inactive rows are invisible
//                 to every conflict and capacity check.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64    // reservations.id
	HostID       uint64    // reservations.eater_id
	RestaurantID uint64    // reservations.restaurant_id
	TableID      uint64    // reservations.table_id
	Date         time.Time // reservations.reservation_date
	StartTime    string    // reservations.reservation_start_time
	EndTime      string    // reservations.reservation_end_time
	PartySize    uint32    // reservations.party_size
	IsActive     bool      // reservations.is_active
	CreatedAt    time.Time // reservations.created_at
	UpdatedAt    time.Time // reservations.updated_at
}
