package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-route-solver/internal/domain"
)

// SQLite-backed implementation of the CustomerRepository port.
type SqliteCustomerRepository struct{ DB *sql.DB }

func NewSqliteCustomerRepository(db *sql.DB) *SqliteCustomerRepository {
	return &SqliteCustomerRepository{DB: db}
}

// Return all customers stored in the database, depot row included,
// ordered by ID.
func (s *SqliteCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite customer repository: DB is nil")
	}

	query := `
	SELECT
		customer_id,
		name,
		lon,
		lat,
		demand,
		ready_min,
		due_min,
		service_min
	FROM customers
	ORDER BY customer_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: query customers table: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.ID, &c.Name, &c.Coord.Lon, &c.Coord.Lat,
			&c.Demand, &c.ReadyMin, &c.DueMin, &c.ServiceMin,
		)
		if err != nil {
			return nil, fmt.Errorf("list customers: scan row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: row iteration: %w", err)
	}

	return customers, nil
}
