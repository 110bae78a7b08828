package services

import (
	"context"
	"errors"
	"testing"

	"fleet-route-solver/internal/adapters/distance"
	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/solver"
)

type stubCustomerRepo struct {
	customers []domain.Customer
	err       error
}

func (s *stubCustomerRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers, s.err
}

func testCustomers() []domain.Customer {
	wide := func(id int, name string, demand float64) domain.Customer {
		return domain.Customer{
			ID: id, Name: name, Demand: demand,
			DueMin: domain.HorizonMin, ServiceMin: 5,
		}
	}
	return []domain.Customer{
		domain.Depot(domain.Coordinates{}),
		wide(1, "Retail Park", 30),
		wide(2, "Market Row", 40),
		wide(3, "Mill Gate", 35),
	}
}

// Symmetric legs over stops {0,1,2,3} with travel minutes equal to km.
func testProvider() *distance.MockMatrixProvider {
	legs := []distance.MockLeg{}
	km := map[[2]int]float64{
		{0, 1}: 4, {0, 2}: 5, {0, 3}: 6,
		{1, 2}: 2, {1, 3}: 7, {2, 3}: 3,
	}
	for pair, d := range km {
		legs = append(legs,
			distance.MockLeg{From: pair[0], To: pair[1], Km: d, Min: d},
			distance.MockLeg{From: pair[1], To: pair[0], Km: d, Min: d},
		)
	}
	return distance.NewMockMatrixProvider(legs)
}

func testSolverConfig() solver.Config {
	cfg := solver.DefaultConfig()
	cfg.VehicleCapacity = 80
	cfg.PopulationSize = 20
	cfg.Generations = 40
	cfg.Seed = 7
	cfg.Workers = 2
	return cfg
}

func TestPlanFleetProducesSchedule(t *testing.T) {
	repo := &stubCustomerRepo{customers: testCustomers()}

	plan, err := PlanFleet(
		context.Background(),
		PlanFleetRequest{Solver: testSolverConfig()},
		repo,
		testProvider(),
	)
	if err != nil {
		t.Fatalf("PlanFleet: %v", err)
	}

	if plan.Vehicles != len(plan.Routes) {
		t.Fatalf("vehicle count %d disagrees with %d routes", plan.Vehicles, len(plan.Routes))
	}
	if plan.Generations != 40 {
		t.Fatalf("expected 40 generations, got %d", plan.Generations)
	}
	if plan.TotalCost <= 0 {
		t.Fatalf("expected positive total cost, got %v", plan.TotalCost)
	}

	// Every customer appears exactly once across all routes.
	seen := map[int]int{}
	for _, route := range plan.Routes {
		for _, stop := range route.Stops {
			seen[stop.CustomerID]++
		}
		if route.LoadUnits > 80 {
			t.Fatalf("vehicle %d over capacity: %v", route.Vehicle, route.LoadUnits)
		}
	}
	for id := 1; id <= 3; id++ {
		if seen[id] != 1 {
			t.Fatalf("customer %d visited %d times", id, seen[id])
		}
	}
}

func TestPlanFleetRequiresDepot(t *testing.T) {
	repo := &stubCustomerRepo{customers: testCustomers()[1:]}

	_, err := PlanFleet(
		context.Background(),
		PlanFleetRequest{Solver: testSolverConfig()},
		repo,
		testProvider(),
	)
	if err == nil {
		t.Fatalf("expected error without depot row")
	}
}

func TestPlanFleetRequiresCustomers(t *testing.T) {
	repo := &stubCustomerRepo{customers: testCustomers()[:1]}

	_, err := PlanFleet(
		context.Background(),
		PlanFleetRequest{Solver: testSolverConfig()},
		repo,
		testProvider(),
	)
	if err == nil {
		t.Fatalf("expected error with depot-only dataset")
	}
}

func TestPlanFleetPropagatesRepositoryError(t *testing.T) {
	wantErr := errors.New("db offline")
	repo := &stubCustomerRepo{err: wantErr}

	_, err := PlanFleet(
		context.Background(),
		PlanFleetRequest{Solver: testSolverConfig()},
		repo,
		testProvider(),
	)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestPlanFleetPropagatesProviderError(t *testing.T) {
	repo := &stubCustomerRepo{customers: testCustomers()}
	// Provider with no legs cannot cover the required pairs.
	empty := distance.NewMockMatrixProvider(nil)

	_, err := PlanFleet(
		context.Background(),
		PlanFleetRequest{Solver: testSolverConfig()},
		repo,
		empty,
	)
	if err == nil {
		t.Fatalf("expected error from incomplete matrix provider")
	}
}
