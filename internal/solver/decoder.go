package solver

import (
	"fleet-route-solver/internal/domain"
)

// Evaluation is the decoded form of one chromosome: the inferred routes and
// their cost components. It is derived on demand and never mutated in place.
type Evaluation struct {
	Fitness     float64
	DistanceKm  float64
	PenaltyCost float64
	Routes      [][]int
}

// TotalCost is the scalar the fitness inverts: distance plus penalty.
func (e Evaluation) TotalCost() float64 { return e.DistanceKm + e.PenaltyCost }

// Evaluate decodes a customer permutation into depot-bounded routes and
// scores it. It is a pure function of the permutation and the problem:
// identical inputs always yield identical output.
//
// The walk keeps a running load, clock, and last-visited stop. A route is
// closed *before* adding a customer whose demand would overflow the current
// load (load-anticipating split), so every emitted route is capacity-feasible
// by construction and capacity never needs a penalty. Time windows are soft:
// early arrival waits for free, late service start costs
// cfg.TardinessPenaltyPerMin per minute.
func Evaluate(perm []int, p *domain.Problem, cfg Config) Evaluation {
	var (
		routes       [][]int
		currentRoute []int
		load         float64
		clock        float64
		lastStop     = p.Depot.ID
		distance     float64
		penalty      float64
	)

	for _, id := range perm {
		c := p.MustCustomer(id)

		// Close the route when this customer would overflow it. The check
		// requires existing load, so a route's first customer always fits;
		// oversize customers end up alone in their own route (see
		// OversizePolicy for the variant that refuses them up front).
		if load > 0 && load+c.Demand > cfg.VehicleCapacity {
			distance += p.Matrix.DistanceKm(lastStop, p.Depot.ID)
			routes = append(routes, currentRoute)

			currentRoute = nil
			load = 0
			clock = 0
			lastStop = p.Depot.ID
		}

		leg := p.Matrix.Leg(lastStop, id)
		distance += leg.DistanceKm

		arrival := clock + leg.TravelMin

		// Early arrival idles until the window opens; only late service
		// start accrues cost.
		serviceStart := arrival
		if c.ReadyMin > arrival {
			serviceStart = c.ReadyMin
		}
		if tardiness := serviceStart - c.DueMin; tardiness > 0 {
			penalty += tardiness * cfg.TardinessPenaltyPerMin
		}

		clock = serviceStart + c.ServiceMin
		currentRoute = append(currentRoute, id)
		load += c.Demand
		lastStop = id
	}

	// The final route is never left open.
	if len(currentRoute) > 0 {
		distance += p.Matrix.DistanceKm(lastStop, p.Depot.ID)
		routes = append(routes, currentRoute)
	}

	return Evaluation{
		Fitness:     fitnessOf(distance + penalty),
		DistanceKm:  distance,
		PenaltyCost: penalty,
		Routes:      routes,
	}
}

// fitnessOf inverts a minimization cost into a maximization fitness. A zero
// cost (degenerate instance) maps to zero fitness rather than dividing by
// zero; an infinite cost (unreachable leg used) naturally maps to zero as
// well, making such chromosomes uncompetitive instead of fatal.
func fitnessOf(cost float64) float64 {
	if cost > 0 {
		return 1 / cost
	}
	return 0
}
