package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-route-solver/internal/domain"
)

// symmetricProblem builds an instance from explicit pairwise distances.
// Travel time equals distance (speed 1 km/min) unless legs override it.
func symmetricProblem(t *testing.T, customers []domain.Customer, km map[[2]int]float64) *domain.Problem {
	t.Helper()

	ids := []int{domain.DepotID}
	for _, c := range customers {
		ids = append(ids, c.ID)
	}

	legs := make(map[[2]int]domain.Leg)
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				legs[[2]int{a, b}] = domain.Leg{}
				continue
			}
			d, ok := km[[2]int{a, b}]
			if !ok {
				d = km[[2]int{b, a}]
			}
			legs[[2]int{a, b}] = domain.Leg{DistanceKm: d, TravelMin: d}
		}
	}

	p, err := domain.NewProblem(domain.Depot(domain.Coordinates{}), customers, domain.NewTravelMatrix(legs))
	require.NoError(t, err)
	return p
}

func wideWindow(id int, demand float64) domain.Customer {
	return domain.Customer{ID: id, Demand: demand, DueMin: domain.HorizonMin}
}

func TestEvaluateSingleRouteWithinCapacity(t *testing.T) {
	p := symmetricProblem(t,
		[]domain.Customer{wideWindow(1, 10), wideWindow(2, 10)},
		map[[2]int]float64{{0, 1}: 2, {1, 2}: 3, {0, 2}: 4},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1, 2}, p, cfg)

	require.Equal(t, [][]int{{1, 2}}, eval.Routes)
	// depot->1 (2) + 1->2 (3) + 2->depot (4)
	require.InDelta(t, 9.0, eval.DistanceKm, 1e-9)
	require.Zero(t, eval.PenaltyCost)
	require.InDelta(t, 1.0/9.0, eval.Fitness, 1e-12)
}

func TestEvaluateSplitsOnCapacity(t *testing.T) {
	p := symmetricProblem(t,
		[]domain.Customer{wideWindow(1, 60), wideWindow(2, 60), wideWindow(3, 30)},
		map[[2]int]float64{{0, 1}: 1, {0, 2}: 1, {0, 3}: 1, {1, 2}: 1, {1, 3}: 1, {2, 3}: 1},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1, 2, 3}, p, cfg)

	// 60+60 overflows, so the route closes before customer 2 is added; the
	// second route then fits both 2 and 3 (60+30 <= 100).
	require.Equal(t, [][]int{{1}, {2, 3}}, eval.Routes)

	for _, route := range eval.Routes {
		var load float64
		for _, id := range route {
			load += p.MustCustomer(id).Demand
		}
		require.LessOrEqual(t, load, cfg.VehicleCapacity)
	}
}

func TestEvaluateOversizeCustomerGetsOwnRoute(t *testing.T) {
	// Demand 150 with capacity 100: the first customer of a route is never
	// rejected on capacity grounds, so the oversize stop rides alone.
	p := symmetricProblem(t,
		[]domain.Customer{wideWindow(1, 150), wideWindow(2, 10)},
		map[[2]int]float64{{0, 1}: 2, {0, 2}: 2, {1, 2}: 2},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1, 2}, p, cfg)

	require.Equal(t, [][]int{{1}, {2}}, eval.Routes)
}

func TestEvaluateEarlyArrivalWaitsWithoutPenalty(t *testing.T) {
	// Travel 0->1 takes 5 min but the window opens at 60: the vehicle idles
	// and service starts exactly at the ready time, penalty free.
	p := symmetricProblem(t,
		[]domain.Customer{{ID: 1, Demand: 10, ReadyMin: 60, DueMin: 180, ServiceMin: 10}},
		map[[2]int]float64{{0, 1}: 5},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1}, p, cfg)

	require.Zero(t, eval.PenaltyCost)
	require.InDelta(t, 10.0, eval.DistanceKm, 1e-9)
}

func TestEvaluateTardinessPenaltyExact(t *testing.T) {
	// Earliest possible arrival is minute 30 against a due time of 20:
	// tardiness 10 minutes at weight 500 per minute.
	p := symmetricProblem(t,
		[]domain.Customer{{ID: 1, Demand: 10, DueMin: 20}},
		map[[2]int]float64{{0, 1}: 30},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1}, p, cfg)

	require.InDelta(t, 10*500.0, eval.PenaltyCost, 1e-9)
	require.InDelta(t, 60.0, eval.DistanceKm, 1e-9)
}

func TestEvaluateClockResetsPerRoute(t *testing.T) {
	// Customer 2 starts a fresh route (capacity split), so its arrival is
	// measured from a depot departure at minute 0, not from the end of the
	// first route.
	p := symmetricProblem(t,
		[]domain.Customer{
			{ID: 1, Demand: 80, DueMin: domain.HorizonMin, ServiceMin: 30},
			{ID: 2, Demand: 80, ReadyMin: 0, DueMin: 15},
		},
		map[[2]int]float64{{0, 1}: 10, {0, 2}: 10, {1, 2}: 10},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1, 2}, p, cfg)

	require.Equal(t, [][]int{{1}, {2}}, eval.Routes)
	// Route 2 arrival is minute 10, due 15: on time despite route 1 ending
	// at minute 40.
	require.Zero(t, eval.PenaltyCost)
}

func TestEvaluateUnreachableLegPropagates(t *testing.T) {
	legs := map[[2]int]domain.Leg{
		{0, 1}: {DistanceKm: domain.Unreachable, TravelMin: domain.Unreachable},
		{1, 0}: {DistanceKm: 1, TravelMin: 1},
	}
	p, err := domain.NewProblem(
		domain.Depot(domain.Coordinates{}),
		[]domain.Customer{wideWindow(1, 10)},
		domain.NewTravelMatrix(legs),
	)
	require.NoError(t, err)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}

	eval := Evaluate([]int{1}, p, cfg)

	require.True(t, domain.IsUnreachable(eval.DistanceKm))
	require.Zero(t, eval.Fitness, "unreachable plans must be uncompetitive, not fatal")
}

func TestEvaluateDeterministic(t *testing.T) {
	p := symmetricProblem(t,
		[]domain.Customer{wideWindow(1, 30), wideWindow(2, 45), wideWindow(3, 15), wideWindow(4, 20)},
		map[[2]int]float64{
			{0, 1}: 4, {0, 2}: 7, {0, 3}: 2, {0, 4}: 9,
			{1, 2}: 3, {1, 3}: 5, {1, 4}: 6,
			{2, 3}: 8, {2, 4}: 1, {3, 4}: 7,
		},
	)
	cfg := Config{VehicleCapacity: 100, TardinessPenaltyPerMin: 500}
	perm := []int{3, 1, 4, 2}

	first := Evaluate(perm, p, cfg)
	for i := 0; i < 10; i++ {
		again := Evaluate(perm, p, cfg)
		require.Equal(t, first, again)
	}
}

func TestFitnessOfZeroCost(t *testing.T) {
	require.Zero(t, fitnessOf(0))
	require.InDelta(t, 0.5, fitnessOf(2), 1e-12)
}
