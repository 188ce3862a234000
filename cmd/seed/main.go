// Command seed populates the database with the sample data set used
// for local development: four eaters, the dietary restriction and
// endorsement catalog, and seven restaurants with hours and tables.
// Rerunning it is safe; every insert is keyed on a unique column and
// skipped when the row already exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// seedPassword is the login password for every seeded eater account.
const seedPassword = "changeme123"

type seedEater struct {
	name, email  string
	restrictions []string
}

type seedRestaurant struct {
	name         string
	rating       float64
	address      string
	phone        string
	email        string
	website      string
	hasParking   bool
	opening      string
	closing      string
	tables       []uint32
	endorsements []string
}

var (
	restrictionNames = []string{"Gluten Free", "Vegetarian", "Paleo", "Vegan"}
	endorsementNames = []string{"Gluten Free Options", "Vegetarian-Friendly", "Vegan-Friendly", "Paleo-friendly"}

	// Each restriction is satisfied by exactly one endorsement.
	restrictionCoverage = map[string]string{
		"Gluten Free": "Gluten Free Options",
		"Vegetarian":  "Vegetarian-Friendly",
		"Paleo":       "Paleo-friendly",
		"Vegan":       "Vegan-Friendly",
	}

	eaters = []seedEater{
		{name: "Eddie Tapia", email: "eddie.tapia@example.com", restrictions: []string{"Gluten Free"}},
		{name: "Jalen Hurts", email: "jalen.hurts@example.com", restrictions: []string{"Vegetarian"}},
		{name: "Selena Gomez", email: "selena.gomez@example.com"},
		{name: "Rihanna", email: "rihanna@example.com"},
	}

	restaurants = []seedRestaurant{
		{
			name: "Tartine Bakery", rating: 4.5, address: "123 Main St", phone: "555-1234",
			email: "info@tartinebakery.com", website: "http://tartinebakery.com", hasParking: true,
			opening: "08:00:00", closing: "20:00:00", tables: []uint32{4, 4, 2, 2},
			endorsements: []string{"Vegetarian-Friendly", "Gluten Free Options"},
		},
		{
			name: "Tacos el Gordo", rating: 4.6, address: "456 Oak Ave", phone: "555-5678",
			email: "contact@tacoselgordo.com", website: "http://tacoselgordo.com",
			opening: "11:00:00", closing: "22:00:00", tables: []uint32{6, 4, 4, 4, 4},
			endorsements: []string{"Gluten Free Options"},
		},
		{
			name: "Lardo", rating: 4.1, address: "789 Pine St", phone: "555-9876",
			email: "info@lardo.com", website: "http://lardo.com", hasParking: true,
			opening: "00:00:00", closing: "23:59:59", tables: []uint32{2, 2, 2, 2, 4, 4, 6},
			endorsements: []string{"Gluten Free Options"},
		},
		{
			name: "Panadería Rosetta", rating: 4.3, address: "101 Walnut St", phone: "555-1010",
			email: "info@panaderia.com", website: "http://panaderia.com", hasParking: true,
			opening: "00:00:00", closing: "23:59:59", tables: []uint32{2, 2, 2, 4, 4},
			endorsements: []string{"Vegetarian-Friendly", "Gluten Free Options"},
		},
		{
			name: "Tetetlán", rating: 4.4, address: "202 Elm St", phone: "555-2020",
			email: "info@tetetlan.com", website: "http://tetetlan.com", hasParking: true,
			opening: "00:00:00", closing: "23:59:59", tables: []uint32{2, 2, 2, 2, 4, 4, 6},
			endorsements: []string{"Paleo-friendly", "Gluten Free Options"},
		},
		{
			name: "Falling Piano Brewing Co", rating: 4.2, address: "304 Oak St", phone: "555-3040",
			email: "info@fallingpiano.com", website: "http://fallingpiano.com", hasParking: true,
			opening: "00:00:00", closing: "23:59:59",
			tables: []uint32{2, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 6},
		},
		{
			name: "u.to.pi.a", rating: 4.5, address: "456 Oak Ave", phone: "555-5678",
			email: "contact@utopiacafe.com", website: "http://utopiacafe.com", hasParking: true,
			opening: "00:00:00", closing: "23:59:59", tables: []uint32{2, 2},
			endorsements: []string{"Vegetarian-Friendly", "Vegan-Friendly"},
		},
	}
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(database.Params{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema init failed: %v", err)
	}
	if err := seed(ctx, db, cfg); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("database seeding completed")
}

func seed(ctx context.Context, db *sql.DB, cfg config.Config) error {
	store := repository.NewStore(db)

	restrictionIDs := map[string]uint64{}
	for _, name := range restrictionNames {
		id, err := upsertNamed(ctx, db, "dietary_restrictions", "restriction_name", name)
		if err != nil {
			return err
		}
		restrictionIDs[name] = id
	}
	endorsementIDs := map[string]uint64{}
	for _, name := range endorsementNames {
		id, err := upsertNamed(ctx, db, "endorsements", "endorsement_name", name)
		if err != nil {
			return err
		}
		endorsementIDs[name] = id
	}
	for restriction, endorsement := range restrictionCoverage {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO restriction_endorsement_mappings (restriction_id, endorsement_id) VALUES (?,?)",
			restrictionIDs[restriction], endorsementIDs[endorsement]); err != nil {
			return err
		}
	}

	for _, e := range eaters {
		id, err := store.EaterRepo.Create(ctx, e.name, e.email, seedPassword, cfg.BcryptCost)
		if errors.Is(err, repository.ErrEmailExists) {
			existing, err := store.EaterRepo.GetByEmail(ctx, e.email)
			if err != nil {
				return err
			}
			id = existing.ID
		} else if err != nil {
			return err
		}
		for _, restriction := range e.restrictions {
			if _, err := db.ExecContext(ctx,
				"INSERT IGNORE INTO eater_dietary_restrictions (eater_id, restriction_id) VALUES (?,?)",
				id, restrictionIDs[restriction]); err != nil {
				return err
			}
		}
		log.Printf("eater %q ready (id=%d)", e.name, id)
	}

	for _, r := range restaurants {
		id, created, err := upsertRestaurant(ctx, db, r)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO restaurant_hours (restaurant_id, opening_time, closing_time) VALUES (?,?,?)",
			id, r.opening, r.closing); err != nil {
			return err
		}
		// Tables have no natural key, so only a fresh restaurant gets them.
		if created {
			for _, capacity := range r.tables {
				if _, err := store.TableRepo.Create(ctx, id, capacity); err != nil {
					return err
				}
			}
		}
		for _, endorsement := range r.endorsements {
			if _, err := db.ExecContext(ctx,
				"INSERT IGNORE INTO restaurant_endorsements (restaurant_id, endorsement_id) VALUES (?,?)",
				id, endorsementIDs[endorsement]); err != nil {
				return err
			}
		}
		log.Printf("restaurant %q ready (id=%d, tables=%d)", r.name, id, len(r.tables))
	}
	return nil
}

// upsertNamed inserts a row into a catalog table keyed on a unique
// name column and returns its ID, existing or new.
func upsertNamed(ctx context.Context, db *sql.DB, table, column, name string) (uint64, error) {
	var id uint64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE "+column+" = ? LIMIT 1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := db.ExecContext(ctx,
		"INSERT INTO "+table+" ("+column+") VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// upsertRestaurant inserts a restaurant keyed on its name, reporting
// whether the row was created by this run.
func upsertRestaurant(ctx context.Context, db *sql.DB, r seedRestaurant) (uint64, bool, error) {
	var id uint64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM restaurants WHERE name = ? LIMIT 1", r.name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO restaurants
			(name, average_rating, address, phone, email, website_url, has_parking, accepts_reservations)
		 VALUES (?,?,?,?,?,?,?,1)`,
		r.name, r.rating, r.address, r.phone, r.email, r.website, r.hasParking)
	if err != nil {
		return 0, false, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return uint64(newID), true, nil
}
