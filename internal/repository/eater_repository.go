package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// EaterRepo provides access to eater accounts and their dietary
// restrictions.
type EaterRepo struct{ DB *sql.DB }

// NewEaterRepo returns an EaterRepo bound to the given database.
func NewEaterRepo(db *sql.DB) *EaterRepo { return &EaterRepo{DB: db} }

// Create inserts an eater with a bcrypt-hashed password and returns
// its ID. A duplicate email yields ErrEmailExists.
func (r *EaterRepo) Create(ctx context.Context, name, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO eaters (name, email, password_hash) VALUES (?,?,?)",
		name, email, hash)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetEater fetches an eater by ID, returning nil when absent.
func (r *EaterRepo) GetEater(ctx context.Context, id uint64) (*model.Eater, error) {
	var e model.Eater
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at, updated_at FROM eaters WHERE id = ? LIMIT 1",
		id).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByEmail fetches an eater by normalized email, returning nil when
// absent.
func (r *EaterRepo) GetByEmail(ctx context.Context, email string) (*model.Eater, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var e model.Eater
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at, updated_at FROM eaters WHERE email = ? LIMIT 1",
		email).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// RestrictionIDsForEaters returns the distinct dietary restriction IDs
// held by any of the given eaters. An empty input returns an empty
// slice without touching the database.
func (r *EaterRepo) RestrictionIDsForEaters(ctx context.Context, eaterIDs []uint64) ([]uint64, error) {
	if len(eaterIDs) == 0 {
		return []uint64{}, nil
	}
	query := "SELECT DISTINCT restriction_id FROM eater_dietary_restrictions WHERE eater_id IN (" +
		placeholders(len(eaterIDs)) + ")"
	rows, err := r.DB.QueryContext(ctx, query, uint64Args(eaterIDs)...)
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

// placeholders builds a "?,?,?" list of n placeholders.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// uint64Args widens a uint64 slice for QueryContext variadics.
func uint64Args(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
