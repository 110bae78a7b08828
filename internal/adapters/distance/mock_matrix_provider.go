package distance

import (
	"context"
	"fmt"

	"fleet-route-solver/internal/domain"
)

type MockLeg struct {
	From, To int
	Km       float64
	Min      float64
}

// MockMatrixProvider serves a fixed set of legs for tests. Self-pairs are
// filled automatically; any other pair missing from the fixture is an error
// so tests notice incomplete setups.
type MockMatrixProvider struct {
	legs map[[2]int]domain.Leg
}

func NewMockMatrixProvider(pairs []MockLeg) *MockMatrixProvider {
	legs := make(map[[2]int]domain.Leg, len(pairs))
	for _, p := range pairs {
		legs[[2]int{p.From, p.To}] = domain.Leg{DistanceKm: p.Km, TravelMin: p.Min}
	}
	return &MockMatrixProvider{legs: legs}
}

func (m *MockMatrixProvider) BuildMatrix(
	_ context.Context,
	stops []domain.Customer,
) (domain.TravelMatrix, error) {
	legs := make(map[[2]int]domain.Leg, len(stops)*len(stops))
	for _, a := range stops {
		for _, b := range stops {
			if a.ID == b.ID {
				legs[[2]int{a.ID, b.ID}] = domain.Leg{}
				continue
			}
			leg, ok := m.legs[[2]int{a.ID, b.ID}]
			if !ok {
				return domain.TravelMatrix{}, fmt.Errorf("mock matrix: missing pair %d -> %d", a.ID, b.ID)
			}
			legs[[2]int{a.ID, b.ID}] = leg
		}
	}
	return domain.NewTravelMatrix(legs), nil
}
