package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fleet-route-solver/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
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
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		demand REAL NOT NULL,
		ready_min REAL NOT NULL,
		due_min REAL NOT NULL,
		service_min REAL NOT NULL
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km REAL NOT NULL,
        travel_min REAL NOT NULL,
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

// Seed-file row. Time windows are "HH:MM" wall-clock strings; they are
// converted to minutes after midnight before insertion.
type CustomerSeed struct {
	CustomerID int     `json:"customer_id"`
	Name       string  `json:"name"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	Demand     float64 `json:"demand"`
	Ready      string  `json:"ready"`
	Due        string  `json:"due"`
	ServiceMin float64 `json:"service_min"`
}

// ParseClock converts an "HH:MM" string to minutes after midnight.
func ParseClock(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hours: %w", s, err)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minutes: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}

	return float64(h*60 + m), nil
}

func seedToCustomer(index int, item CustomerSeed) (domain.Customer, error) {
	if item.CustomerID < 0 {
		return domain.Customer{}, fmt.Errorf("seed customers: invalid customer_id at index %d: %d", index+1, item.CustomerID)
	}

	name := strings.TrimSpace(item.Name)
	if name == "" {
		return domain.Customer{}, fmt.Errorf("seed customers: item at index %d: name cannot be empty", index+1)
	}

	if item.Demand < 0 {
		return domain.Customer{}, fmt.Errorf("seed customers: item %q: demand cannot be negative", name)
	}

	c := domain.Customer{
		ID:         item.CustomerID,
		Name:       name,
		Coord:      domain.Coordinates{Lon: item.Lon, Lat: item.Lat},
		Demand:     item.Demand,
		ServiceMin: item.ServiceMin,
		DueMin:     domain.HorizonMin,
	}

	if c.IsDepot() {
		c.Demand = 0
		c.ServiceMin = 0
		return c, nil
	}

	ready, err := ParseClock(item.Ready)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("seed customers: item %q: %w", name, err)
	}

	due, err := ParseClock(item.Due)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("seed customers: item %q: %w", name, err)
	}

	if ready > due {
		return domain.Customer{}, fmt.Errorf("seed customers: item %q: ready %s after due %s", name, item.Ready, item.Due)
	}

	c.ReadyMin = ready
	c.DueMin = due
	return c, nil
}

// Populate the database with customer data from a JSON file. The depot may
// be included as customer_id 0; it gets a full-horizon window regardless of
// what the file says.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO customers (
		customer_id,
		name,
		lon,
		lat,
		demand,
		ready_min,
		due_min,
		service_min
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
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
