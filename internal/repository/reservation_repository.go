package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and their
// attendee associations. Start and end times are stored as zero-padded
// "HH:MM" strings produced by the booking engine, which keeps
// lexicographic SQL comparison equivalent to clock comparison. All
// timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct{ DB *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = `id, eater_id, restaurant_id, table_id, reservation_date,
	reservation_start_time, reservation_end_time, party_size, is_active, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var r model.Reservation
	err := row.Scan(&r.ID, &r.HostID, &r.RestaurantID, &r.TableID, &r.Date,
		&r.StartTime, &r.EndTime, &r.PartySize, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReservation fetches a reservation by ID regardless of its active
// flag, returning nil when absent.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ? LIMIT 1", id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// ActiveByRestaurantDate returns all active reservations for the
// restaurant on the given date.
func (r *ReservationRepo) ActiveByRestaurantDate(ctx context.Context, restaurantID uint64, date time.Time) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE restaurant_id = ? AND reservation_date = ? AND is_active = 1",
		restaurantID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ActiveByEaterDate returns all active reservations on the date where
// the eater is the host or an attendee. Host and attendee membership
// are two logically distinct relations; the DISTINCT collapses
// reservations matched through both.
func (r *ReservationRepo) ActiveByEaterDate(ctx context.Context, eaterID uint64, date time.Time) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT r.id, r.eater_id, r.restaurant_id, r.table_id, r.reservation_date,
			r.reservation_start_time, r.reservation_end_time, r.party_size, r.is_active, r.created_at, r.updated_at
		 FROM reservations r
		 LEFT JOIN reservation_attendees ra ON ra.reservation_id = r.id
		 WHERE r.reservation_date = ? AND r.is_active = 1
		   AND (r.eater_id = ? OR ra.eater_id = ?)`,
		date.Format("2006-01-02"), eaterID, eaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// AttendeeIDs returns the eater IDs attending a reservation, in
// insertion order.
func (r *ReservationRepo) AttendeeIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT eater_id FROM reservation_attendees WHERE reservation_id = ? ORDER BY eater_id",
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// CreateReservation persists a reservation and its attendee set in one
// transaction. Before inserting it re-validates, under row locks, that
// the chosen table is still free for the window and that no party
// member gained an overlapping reservation since the engine's checks
// ran; a lost race returns booking.ErrCommitConflict and nothing is
// written. On
// success the generated ID and timestamps are populated on res.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *model.Reservation, attendeeIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	date := res.Date.Format("2006-01-02")

	// Overlap re-check for the table. start1 < end2 AND end1 > start2
	// on zero-padded HH:MM strings.
	var tableClashes int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE table_id = ? AND reservation_date = ? AND is_active = 1
		   AND reservation_start_time < ? AND reservation_end_time > ?
		 FOR UPDATE`,
		res.TableID, date, res.EndTime, res.StartTime).Scan(&tableClashes)
	if err != nil {
		return err
	}
	if tableClashes > 0 {
		return booking.ErrCommitConflict
	}

	// Overlap re-check for every party member, as host or attendee.
	if len(attendeeIDs) > 0 {
		query := `SELECT COUNT(DISTINCT r.id) FROM reservations r
		 LEFT JOIN reservation_attendees ra ON ra.reservation_id = r.id
		 WHERE r.reservation_date = ? AND r.is_active = 1
		   AND r.reservation_start_time < ? AND r.reservation_end_time > ?
		   AND (r.eater_id IN (` + placeholders(len(attendeeIDs)) + `)
		     OR ra.eater_id IN (` + placeholders(len(attendeeIDs)) + `))
		 FOR UPDATE`
		args := []any{date, res.EndTime, res.StartTime}
		args = append(args, uint64Args(attendeeIDs)...)
		args = append(args, uint64Args(attendeeIDs)...)
		var memberClashes int
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&memberClashes); err != nil {
			return err
		}
		if memberClashes > 0 {
			return booking.ErrCommitConflict
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
			(eater_id, restaurant_id, table_id, reservation_date,
			 reservation_start_time, reservation_end_time, party_size, is_active)
		 VALUES (?,?,?,?,?,?,?,1)`,
		res.HostID, res.RestaurantID, res.TableID, date,
		res.StartTime, res.EndTime, res.PartySize)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	for _, eaterID := range attendeeIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO reservation_attendees (reservation_id, eater_id) VALUES (?,?)",
			res.ID, eaterID); err != nil {
			return err
		}
	}

	// Query back the row to populate timestamps and defaults.
	row := tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", res.ID)
	stored, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = *stored

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetReservationInactive soft-deletes a reservation. Re-running it on
// an already inactive row succeeds as a no-op assignment.
func (r *ReservationRepo) SetReservationInactive(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET is_active = 0, updated_at = NOW() WHERE id = ?", id)
	return err
}

// DeleteReservation hard-deletes a reservation together with its
// attendee associations.
func (r *ReservationRepo) DeleteReservation(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reservation_attendees WHERE reservation_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reservations WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
