package repository

import "database/sql"

// Store aggregates the per-entity repositories over one database
// handle. It satisfies the booking engine's store interface, so a
// single *Store is what gets handed to the engine at startup.
type Store struct {
	*EaterRepo
	*RestaurantRepo
	*TableRepo
	*ReservationRepo
	*TokenRepo
}

// NewStore builds a Store with all repositories sharing the given
// database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		EaterRepo:       NewEaterRepo(db),
		RestaurantRepo:  NewRestaurantRepo(db),
		TableRepo:       NewTableRepo(db),
		ReservationRepo: NewReservationRepo(db),
		TokenRepo:       NewTokenRepo(db),
	}
}
