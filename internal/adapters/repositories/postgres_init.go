package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fleet-route-solver/internal/domain"
)

// Initialize the Postgres database schema. Table shape matches the SQLite
// variant; only placeholder and upsert syntax differ.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCustomersQuery := `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		demand DOUBLE PRECISION NOT NULL,
		ready_min DOUBLE PRECISION NOT NULL,
		due_min DOUBLE PRECISION NOT NULL,
		service_min DOUBLE PRECISION NOT NULL
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km DOUBLE PRECISION NOT NULL,
        travel_min DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_travel_leg_cache_destination_origin
    ON travel_leg_cache(destination, origin);
	`

	statements := []string{
		createCustomersQuery,
		createLegCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with customer data from a JSON file.
// Validation and time-window parsing match SeedFromJSON.
func SeedFromJSONPostgres(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed customers: read %q: %w", jsonPath, err)
	}

	var data []CustomerSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed customers: parse json: %w", err)
	}

	rows, err := validateSeeds(data)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed customers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO customers (
		customer_id,
		name,
		lon,
		lat,
		demand,
		ready_min,
		due_min,
		service_min
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (customer_id)
	DO UPDATE SET
		name = EXCLUDED.name,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		demand = EXCLUDED.demand,
		ready_min = EXCLUDED.ready_min,
		due_min = EXCLUDED.due_min,
		service_min = EXCLUDED.service_min;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed customers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		_, err := stmt.Exec(
			c.ID, c.Name, c.Coord.Lon, c.Coord.Lat,
			c.Demand, c.ReadyMin, c.DueMin, c.ServiceMin,
		)
		if err != nil {
			return fmt.Errorf("seed customers: insert customer_id=%d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed customers: commit tx: %w", err)
	}

	return nil
}

func validateSeeds(data []CustomerSeed) ([]domain.Customer, error) {
	rows := make([]domain.Customer, 0, len(data))
	for i, item := range data {
		c, err := seedToCustomer(i, item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, c)
	}
	return rows, nil
}
