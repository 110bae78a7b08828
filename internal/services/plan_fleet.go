package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/platform/metrics"
	"fleet-route-solver/internal/ports"
	"fleet-route-solver/internal/solver"
)

type PlanFleetRequest struct {
	Solver solver.Config
}

// Complete planning result: the winning routes with per-stop timing and the
// headline cost figures.
type FleetPlan struct {
	Routes      []RouteItinerary
	Vehicles    int
	DistanceKm  float64
	PenaltyCost float64
	TotalCost   float64
	Fitness     float64
	Generations int
}

// PlanFleet loads the customer set, builds the travel matrix, runs the
// evolutionary search, and expands the winner into a stop-by-stop schedule.
func PlanFleet(
	ctx context.Context,
	req PlanFleetRequest,
	repo ports.CustomerRepository,
	provider ports.TravelMatrixProvider,
) (*FleetPlan, error) {
	all, err := repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list customers: %w", err)
	}

	var depot domain.Customer
	depotFound := false
	customers := make([]domain.Customer, 0, len(all))
	for _, c := range all {
		if c.IsDepot() {
			depot = c
			depotFound = true
			continue
		}
		customers = append(customers, c)
	}
	if !depotFound {
		return nil, fmt.Errorf("plan fleet: no depot row (customer_id %d) in dataset", domain.DepotID)
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("plan fleet: dataset has no customers to serve")
	}

	stops := append([]domain.Customer{depot}, customers...)
	matrix, err := provider.BuildMatrix(ctx, stops)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: build travel matrix: %w", err)
	}

	p, err := domain.NewProblem(depot, customers, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: assemble problem: %w", err)
	}

	cfg := req.Solver
	userHook := cfg.OnGeneration
	cfg.OnGeneration = func(g solver.Generation) {
		metrics.SolveGenerations.Inc()
		if userHook != nil {
			userHook(g)
		}
	}

	started := time.Now()
	sol, err := solver.Solve(ctx, p, cfg)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: solve: %w", err)
	}
	elapsed := time.Since(started)

	metrics.SolveDuration.Observe(elapsed.Seconds())
	metrics.BestPlanCost.Set(sol.TotalCost)
	log.Printf(
		"Fleet plan complete customers=%d vehicles=%d distance_km=%.2f penalty=%.2f took=%s",
		len(customers), len(sol.Routes), sol.DistanceKm, sol.PenaltyCost, elapsed.Round(time.Millisecond),
	)

	routes, err := BuildItinerary(p, sol.Routes, cfg.TardinessPenaltyPerMin)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: expand itinerary: %w", err)
	}

	return &FleetPlan{
		Routes:      routes,
		Vehicles:    len(sol.Routes),
		DistanceKm:  sol.DistanceKm,
		PenaltyCost: sol.PenaltyCost,
		TotalCost:   sol.TotalCost,
		Fitness:     sol.Fitness,
		Generations: sol.Generations,
	}, nil
}
