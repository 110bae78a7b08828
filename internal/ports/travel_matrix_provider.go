package ports

import (
	"context"

	"fleet-route-solver/internal/domain"
)

// Contract for building the pairwise travel matrix over a set of stops.
//
// The returned matrix must cover every ordered pair of the given stops,
// self-pairs included. Pairs with no road connection carry the unreachable
// sentinel rather than being dropped.
type TravelMatrixProvider interface {
	BuildMatrix(ctx context.Context, stops []domain.Customer) (domain.TravelMatrix, error)
}
