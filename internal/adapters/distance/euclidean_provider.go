package distance

import (
	"context"
	"errors"
	"fmt"
	"math"

	"fleet-route-solver/internal/domain"
)

// EuclideanMatrixProvider derives the travel matrix from straight-line
// geometry: distance is the Euclidean distance between coordinates treated
// as points on a plane, travel time is distance divided by a constant
// vehicle speed. Useful for synthetic instances and offline runs where no
// routing service is available.
type EuclideanMatrixProvider struct {
	speedKmPerMin float64
}

// NewEuclideanMatrixProvider builds a provider with the given vehicle speed
// in km/min (e.g. 0.6 for 36 km/h).
func NewEuclideanMatrixProvider(speedKmPerMin float64) (*EuclideanMatrixProvider, error) {
	if speedKmPerMin <= 0 {
		return nil, fmt.Errorf("euclidean provider: speed must be positive, got %g", speedKmPerMin)
	}
	return &EuclideanMatrixProvider{speedKmPerMin: speedKmPerMin}, nil
}

// BuildMatrix computes every ordered pair from coordinates. It never fails
// for reachable geometry and performs no I/O.
func (e *EuclideanMatrixProvider) BuildMatrix(
	_ context.Context,
	stops []domain.Customer,
) (domain.TravelMatrix, error) {
	if len(stops) == 0 {
		return domain.TravelMatrix{}, errors.New("build matrix: stops must not be empty")
	}

	legs := make(map[[2]int]domain.Leg, len(stops)*len(stops))
	for _, a := range stops {
		for _, b := range stops {
			if a.ID == b.ID {
				legs[[2]int{a.ID, b.ID}] = domain.Leg{}
				continue
			}

			dx := a.Coord.Lon - b.Coord.Lon
			dy := a.Coord.Lat - b.Coord.Lat
			km := math.Sqrt(dx*dx + dy*dy)

			legs[[2]int{a.ID, b.ID}] = domain.Leg{
				DistanceKm: km,
				TravelMin:  km / e.speedKmPerMin,
			}
		}
	}

	return domain.NewTravelMatrix(legs), nil
}
