// Package repository implements the persistence layer over MySQL.
// Sentinel errors defined here let higher layers distinguish failure
// scenarios without inspecting driver errors. Reservation commit
// races are reported with booking.ErrCommitConflict, the sentinel the
// store contract names.
package repository

import "errors"

// ErrEmailExists is returned when an eater registration uses an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
