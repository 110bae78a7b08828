package ports

import (
	"context"

	"fleet-route-solver/internal/domain"
)

// Persistent cache of travel legs keyed by coordinate strings ("lon,lat"),
// so entries survive across datasets that renumber their stops. Callers are
// expected to pass normalized keys (domain.Coordinates.Key).
type MatrixCache interface {
	// Fetch cached legs from one origin to many destinations. Absent pairs
	// are simply missing from the result, never an error.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]domain.Leg, error)

	// Store legs from a single origin.
	PutMany(ctx context.Context, origin string, legs map[string]domain.Leg) error
}
