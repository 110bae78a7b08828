package ports

import (
	"context"

	"fleet-route-solver/internal/domain"
)

// Port: a boundary for retrieving customer records from a data source.
type CustomerRepository interface {
	// Return every known stop, the depot included, ordered by identifier.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
