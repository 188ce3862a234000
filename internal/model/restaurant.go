package model

import "time"

// Restaurant represents a venue that can be booked. A restaurant owns
// an ordered set of tables and at most one OperatingHours record; a
// restaurant without hours is treated as never open.
//
// Fields:
//  ID                  – primary key identifier.
//  Name                – unique restaurant name.
//  AverageRating       – optional aggregate rating.
//  Address             – optional street address.
//  Phone               – optional phone number.
//  Email               – optional contact email.
//  WebsiteURL          – optional website link.
//  HasParking          – whether parking is available.
//  AcceptsReservations – whether the booking engine may allocate tables here.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type Restaurant struct {
	ID                  uint64    // restaurants.id
	Name                string    // restaurants.name
	AverageRating       *float64  // restaurants.average_rating (nullable)
	Address             *string   // restaurants.address (nullable)
	Phone               *string   // restaurants.phone (nullable)
	Email               *string   // restaurants.email (nullable)
	WebsiteURL          *string   // restaurants.website_url (nullable)
	HasParking          bool      // restaurants.has_parking
	AcceptsReservations bool      // restaurants.accepts_reservations
	CreatedAt           time.Time // restaurants.created_at
	UpdatedAt           time.Time // restaurants.updated_at
}

// OperatingHours holds the single daily opening window of a restaurant.
// Times are stored as zero-padded HH:MM strings at minute resolution;
// multi-day spans are not supported.
type OperatingHours struct {
	ID           uint64 // restaurant_hours.id
	RestaurantID uint64 // restaurant_hours.restaurant_id
	OpeningTime  string // restaurant_hours.opening_time, "HH:MM"
	ClosingTime  string // restaurant_hours.closing_time, "HH:MM"
}

// Table describes a physical table in a restaurant. Capacity is the
// number of seats and is immutable after creation.
type Table struct {
	ID           uint64 // tables.id
	RestaurantID uint64 // tables.restaurant_id
	Capacity     uint32 // tables.capacity, >= 1
}
