package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates every table the service uses. Statements
// are idempotent and ordered so foreign keys always reference tables
// created earlier in the list.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS eaters (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_eaters_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS dietary_restrictions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restriction_name VARCHAR(100) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_restriction_name (restriction_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS endorsements (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		endorsement_name VARCHAR(100) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_endorsement_name (endorsement_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS eater_dietary_restrictions (
		eater_id BIGINT UNSIGNED NOT NULL,
		restriction_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (eater_id, restriction_id),
		CONSTRAINT fk_edr_eater FOREIGN KEY (eater_id) REFERENCES eaters(id),
		CONSTRAINT fk_edr_restriction FOREIGN KEY (restriction_id) REFERENCES dietary_restrictions(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restriction_endorsement_mappings (
		restriction_id BIGINT UNSIGNED NOT NULL,
		endorsement_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (restriction_id, endorsement_id),
		CONSTRAINT fk_rem_restriction FOREIGN KEY (restriction_id) REFERENCES dietary_restrictions(id),
		CONSTRAINT fk_rem_endorsement FOREIGN KEY (endorsement_id) REFERENCES endorsements(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurants (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		average_rating DECIMAL(3,2) NULL,
		address VARCHAR(255) NULL,
		phone VARCHAR(50) NULL,
		email VARCHAR(255) NULL,
		website_url VARCHAR(255) NULL,
		has_parking TINYINT(1) NOT NULL DEFAULT 0,
		accepts_reservations TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_endorsements (
		restaurant_id BIGINT UNSIGNED NOT NULL,
		endorsement_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (restaurant_id, endorsement_id),
		CONSTRAINT fk_re_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id),
		CONSTRAINT fk_re_endorsement FOREIGN KEY (endorsement_id) REFERENCES endorsements(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_hours (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		opening_time TIME NOT NULL,
		closing_time TIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_hours_restaurant (restaurant_id),
		CONSTRAINT fk_hours_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tables (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		capacity INT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_tables_restaurant (restaurant_id),
		CONSTRAINT fk_tables_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		eater_id BIGINT UNSIGNED NOT NULL,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		table_id BIGINT UNSIGNED NOT NULL,
		reservation_date DATE NOT NULL,
		reservation_start_time VARCHAR(5) NOT NULL,
		reservation_end_time VARCHAR(5) NOT NULL,
		party_size INT UNSIGNED NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_res_restaurant_date (restaurant_id, reservation_date),
		KEY idx_res_eater_date (eater_id, reservation_date),
		KEY idx_res_table_date (table_id, reservation_date),
		CONSTRAINT fk_res_eater FOREIGN KEY (eater_id) REFERENCES eaters(id),
		CONSTRAINT fk_res_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id),
		CONSTRAINT fk_res_table FOREIGN KEY (table_id) REFERENCES tables(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservation_attendees (
		reservation_id BIGINT UNSIGNED NOT NULL,
		eater_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (reservation_id, eater_id),
		KEY idx_ra_eater (eater_id),
		CONSTRAINT fk_ra_reservation FOREIGN KEY (reservation_id) REFERENCES reservations(id),
		CONSTRAINT fk_ra_eater FOREIGN KEY (eater_id) REFERENCES eaters(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		eater_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_token_hash (token_hash),
		KEY idx_tokens_eater (eater_id),
		CONSTRAINT fk_tokens_eater FOREIGN KEY (eater_id) REFERENCES eaters(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. Run at startup before the
// store is used; existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
