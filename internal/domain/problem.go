package domain

import (
	"errors"
	"fmt"
)

// Problem is the immutable description of one routing instance: the depot,
// the customers to serve, and the travel matrix covering every ordered pair
// of stops. It carries no solver parameters; capacity, penalties, and GA
// settings travel separately so independent solves never interfere.
type Problem struct {
	Depot       Customer
	CustomerIDs []int
	byID        map[int]Customer
	Matrix      TravelMatrix
}

// NewProblem validates and assembles a routing instance. It fails fast on
// model inconsistencies (missing matrix pairs, inverted time windows,
// negative demand) so the evolutionary loop never discovers them mid-run.
// The order of non-depot customers is preserved.
func NewProblem(depot Customer, customers []Customer, matrix TravelMatrix) (*Problem, error) {
	if !depot.IsDepot() {
		return nil, fmt.Errorf("new problem: depot must have id %d, got %d", DepotID, depot.ID)
	}
	if len(customers) == 0 {
		return nil, errors.New("new problem: customer list must not be empty")
	}

	p := &Problem{
		Depot:       depot,
		CustomerIDs: make([]int, 0, len(customers)),
		byID:        make(map[int]Customer, len(customers)+1),
		Matrix:      matrix,
	}
	p.byID[depot.ID] = depot

	for _, c := range customers {
		if c.ID == DepotID {
			return nil, fmt.Errorf("new problem: customer list contains the depot id %d", DepotID)
		}
		if _, dup := p.byID[c.ID]; dup {
			return nil, fmt.Errorf("new problem: duplicate customer id %d", c.ID)
		}
		if c.Demand < 0 {
			return nil, fmt.Errorf("new problem: customer %d has negative demand %g", c.ID, c.Demand)
		}
		if c.ReadyMin > c.DueMin {
			return nil, fmt.Errorf(
				"new problem: customer %d has ready time %g after due time %g",
				c.ID, c.ReadyMin, c.DueMin,
			)
		}
		p.byID[c.ID] = c
		p.CustomerIDs = append(p.CustomerIDs, c.ID)
	}

	// Every ordered pair, self-pairs included, must be present. Unreachable
	// legs are allowed (they carry the infinite sentinel); absent legs are not.
	all := append([]int{depot.ID}, p.CustomerIDs...)
	for _, from := range all {
		for _, to := range all {
			if !matrix.Has(from, to) {
				return nil, fmt.Errorf("new problem: travel matrix missing pair %d -> %d", from, to)
			}
		}
	}

	return p, nil
}

// Customer returns the customer with the given ID. The boolean mirrors map
// lookup semantics for callers that work with externally supplied IDs.
func (p *Problem) Customer(id int) (Customer, bool) {
	c, ok := p.byID[id]
	return c, ok
}

// MustCustomer returns the customer with the given ID and panics if it is
// unknown. Intended for use on IDs that came out of the problem itself.
func (p *Problem) MustCustomer(id int) Customer {
	c, ok := p.byID[id]
	if !ok {
		panic(fmt.Sprintf("domain: unknown customer id %d", id))
	}
	return c
}
