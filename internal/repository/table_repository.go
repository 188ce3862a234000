package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo provides access to restaurant tables.
type TableRepo struct{ DB *sql.DB }

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// TablesFitting returns the restaurant's tables that seat at least
// minCapacity, ordered ascending by capacity (then ID for a stable
// tie-break). The ordering is what makes the allocator best-fit.
func (r *TableRepo) TablesFitting(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, restaurant_id, capacity FROM tables WHERE restaurant_id = ? AND capacity >= ? ORDER BY capacity ASC, id ASC",
		restaurantID, minCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Capacity); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a table and returns its ID. Used by the seeder.
func (r *TableRepo) Create(ctx context.Context, restaurantID uint64, capacity uint32) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tables (restaurant_id, capacity) VALUES (?,?)", restaurantID, capacity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
