package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantRepo provides access to restaurants, their operating
// hours, endorsements and the restriction→endorsement coverage
// mapping.
type RestaurantRepo struct{ DB *sql.DB }

// NewRestaurantRepo returns a RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

const restaurantColumns = `id, name, average_rating, address, phone, email, website_url,
	has_parking, accepts_reservations, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var (
		r       model.Restaurant
		rating  sql.NullFloat64
		address sql.NullString
		phone   sql.NullString
		email   sql.NullString
		website sql.NullString
	)
	err := row.Scan(&r.ID, &r.Name, &rating, &address, &phone, &email, &website,
		&r.HasParking, &r.AcceptsReservations, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		v := rating.Float64
		r.AverageRating = &v
	}
	if address.Valid {
		v := address.String
		r.Address = &v
	}
	if phone.Valid {
		v := phone.String
		r.Phone = &v
	}
	if email.Valid {
		v := email.String
		r.Email = &v
	}
	if website.Valid {
		v := website.String
		r.WebsiteURL = &v
	}
	return &r, nil
}

// GetRestaurant fetches a restaurant by ID, returning nil when absent.
func (r *RestaurantRepo) GetRestaurant(ctx context.Context, id uint64) (*model.Restaurant, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = ? LIMIT 1", id)
	rest, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rest, err
}

// GetOperatingHours fetches the hours row for a restaurant, returning
// nil when the restaurant has no hours record. TIME columns come back
// as "HH:MM:SS"; the leading "HH:MM" is what the engine consumes and
// the clock parser tolerates the trailing seconds.
func (r *RestaurantRepo) GetOperatingHours(ctx context.Context, restaurantID uint64) (*model.OperatingHours, error) {
	var h model.OperatingHours
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, restaurant_id, TIME_FORMAT(opening_time, '%H:%i'), TIME_FORMAT(closing_time, '%H:%i') FROM restaurant_hours WHERE restaurant_id = ? LIMIT 1",
		restaurantID).Scan(&h.ID, &h.RestaurantID, &h.OpeningTime, &h.ClosingTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListReservable returns every restaurant that accepts reservations,
// ordered by ID, with hours and endorsement IDs preloaded. Loading is
// three queries rather than one join so each candidate carries its
// full association set without row duplication.
func (r *RestaurantRepo) ListReservable(ctx context.Context) ([]booking.Candidate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE accepts_reservations = 1 ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]booking.Candidate, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		index[rest.ID] = len(candidates)
		candidates = append(candidates, booking.Candidate{
			Restaurant:     *rest,
			EndorsementIDs: []uint64{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	hrows, err := r.DB.QueryContext(ctx,
		"SELECT id, restaurant_id, TIME_FORMAT(opening_time, '%H:%i'), TIME_FORMAT(closing_time, '%H:%i') FROM restaurant_hours")
	if err != nil {
		return nil, err
	}
	defer hrows.Close()
	for hrows.Next() {
		var h model.OperatingHours
		if err := hrows.Scan(&h.ID, &h.RestaurantID, &h.OpeningTime, &h.ClosingTime); err != nil {
			return nil, err
		}
		if i, ok := index[h.RestaurantID]; ok {
			hours := h
			candidates[i].Hours = &hours
		}
	}
	if err := hrows.Err(); err != nil {
		return nil, err
	}

	erows, err := r.DB.QueryContext(ctx,
		"SELECT restaurant_id, endorsement_id FROM restaurant_endorsements")
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	for erows.Next() {
		var restaurantID, endorsementID uint64
		if err := erows.Scan(&restaurantID, &endorsementID); err != nil {
			return nil, err
		}
		if i, ok := index[restaurantID]; ok {
			candidates[i].EndorsementIDs = append(candidates[i].EndorsementIDs, endorsementID)
		}
	}
	return candidates, erows.Err()
}

// EndorsementIDsForRestrictions returns the distinct endorsement IDs
// mapped to any of the given restrictions via the coverage mapping.
func (r *RestaurantRepo) EndorsementIDsForRestrictions(ctx context.Context, restrictionIDs []uint64) ([]uint64, error) {
	if len(restrictionIDs) == 0 {
		return []uint64{}, nil
	}
	query := "SELECT DISTINCT endorsement_id FROM restriction_endorsement_mappings WHERE restriction_id IN (" +
		placeholders(len(restrictionIDs)) + ")"
	rows, err := r.DB.QueryContext(ctx, query, uint64Args(restrictionIDs)...)
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

// EndorsementsByRestaurant returns the named endorsements a restaurant
// advertises, for response formatting.
func (r *RestaurantRepo) EndorsementsByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Endorsement, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id, e.endorsement_name
		 FROM endorsements e
		 JOIN restaurant_endorsements re ON re.endorsement_id = e.id
		 WHERE re.restaurant_id = ?
		 ORDER BY e.id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Endorsement, 0)
	for rows.Next() {
		var e model.Endorsement
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
