// Package solver evolves customer permutations into capacity- and
// time-feasible multi-vehicle route plans with a genetic algorithm.
//
// A chromosome is a permutation of the non-depot customer IDs with no route
// boundaries stored; the decoder infers boundaries while walking the
// permutation, so every chromosome is structurally valid by construction.
// Capacity is enforced by splitting routes, time windows are soft and
// penalized per late minute.
package solver

import (
	"fmt"
	"runtime"
)

// OversizePolicy decides what happens when a single customer's demand alone
// exceeds the vehicle capacity.
type OversizePolicy int

const (
	// OversizeAllow places the oversize customer alone in its own route.
	// The capacity check only fires when the current route already carries
	// load, so a route's first customer is never rejected.
	OversizeAllow OversizePolicy = iota

	// OversizeReject refuses the whole problem before the first generation.
	OversizeReject
)

// Generation reports solver progress after one generation has been
// evaluated and the best-so-far record updated.
type Generation struct {
	Index        int
	BestCost     float64
	BestDistance float64
	BestPenalty  float64
	Routes       int
}

// Config carries every tunable of one solve. It is passed explicitly into
// Solve so concurrent solves (tests, tuning sweeps) never share state.
type Config struct {
	// VehicleCapacity is the load limit of each vehicle.
	VehicleCapacity float64

	// PopulationSize is the fixed number of chromosomes per generation.
	PopulationSize int

	// Generations is the fixed number of generations to run; there is no
	// early-convergence stop.
	Generations int

	// MutationRate is the per-offspring swap probability in [0, 1].
	MutationRate float64

	// TournamentSize is the number of entrants per selection tournament.
	TournamentSize int

	// TardinessPenaltyPerMin is the cost added per minute of late service
	// start. Waiting for a window to open is never penalized.
	TardinessPenaltyPerMin float64

	// Seed fixes the random source for reproducible runs; zero selects a
	// time-based seed.
	Seed int64

	// Workers bounds the number of goroutines evaluating a generation.
	// Zero means one worker per CPU.
	Workers int

	// Oversize selects the policy for customers whose demand alone exceeds
	// VehicleCapacity.
	Oversize OversizePolicy

	// OnGeneration, when set, is called after each generation with the
	// best-so-far cost breakdown. Must not block.
	OnGeneration func(Generation)
}

// DefaultConfig returns the tuning the solver ships with.
func DefaultConfig() Config {
	return Config{
		VehicleCapacity:        100,
		PopulationSize:         50,
		Generations:            500,
		MutationRate:           0.1,
		TournamentSize:         3,
		TardinessPenaltyPerMin: 500,
	}
}

// withDefaults fills zero values that have a defined fallback.
func (c Config) withDefaults() Config {
	if c.TournamentSize == 0 {
		c.TournamentSize = 3
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Validate rejects configurations before the loop starts; nothing is
// discovered mid-run.
func (c Config) Validate() error {
	if c.VehicleCapacity <= 0 {
		return fmt.Errorf("solver config: vehicle capacity must be positive, got %g", c.VehicleCapacity)
	}
	if c.PopulationSize <= 0 {
		return fmt.Errorf("solver config: population size must be positive, got %d", c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("solver config: generation count must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("solver config: mutation rate must be in [0, 1], got %g", c.MutationRate)
	}
	if c.TournamentSize < 2 {
		return fmt.Errorf("solver config: tournament size must be at least 2, got %d", c.TournamentSize)
	}
	if c.TardinessPenaltyPerMin < 0 {
		return fmt.Errorf("solver config: tardiness penalty must be non-negative, got %g", c.TardinessPenaltyPerMin)
	}
	return nil
}
