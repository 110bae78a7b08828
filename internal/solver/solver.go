package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fleet-route-solver/internal/domain"
)

// Solution is the all-time best plan found by a solve: the winning
// permutation, its decoded routes, and the cost breakdown.
type Solution struct {
	Best        []int
	Routes      [][]int
	DistanceKm  float64
	PenaltyCost float64
	TotalCost   float64
	Fitness     float64
	Generations int
}

// Solve runs the genetic algorithm for the configured number of generations
// and returns the best solution seen across the whole run.
//
// Each generation evaluates the full population, updates the global
// best-so-far on strict improvement only, then breeds the next population:
// one verbatim copy of the generation champion (elitism slot) plus offspring
// produced by tournament selection, order crossover, and swap mutation.
// Generations depend on each other and run strictly in sequence; the ctx is
// checked between generations, so a cancelled solve returns promptly with
// ctx's error without changing results of uncancelled runs.
func Solve(ctx context.Context, p *domain.Problem, cfg Config) (*Solution, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("solve: problem must be non-nil")
	}
	if len(p.CustomerIDs) == 0 {
		return nil, fmt.Errorf("solve: problem has no customers")
	}

	if cfg.Oversize == OversizeReject {
		for _, id := range p.CustomerIDs {
			if demand := p.MustCustomer(id).Demand; demand > cfg.VehicleCapacity {
				return nil, fmt.Errorf(
					"solve: customer %d demand %g exceeds vehicle capacity %g",
					id, demand, cfg.VehicleCapacity,
				)
			}
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	population := initPopulation(rng, p.CustomerIDs, cfg.PopulationSize)

	var (
		best     Evaluation
		bestPerm []int
	)
	best.Fitness = -1

	for gen := 0; gen < cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("solve: generation %d: %w", gen, ctx.Err())
		default:
		}

		evals := evaluateAll(p, cfg, population)
		champion := championIndex(evals)

		// Global elitism: the record survives generation replacement and
		// moves only on strict improvement.
		if evals[champion].Fitness > best.Fitness {
			best = evals[champion]
			bestPerm = append([]int(nil), population[champion]...)
		}

		if cfg.OnGeneration != nil {
			cfg.OnGeneration(Generation{
				Index:        gen,
				BestCost:     best.TotalCost(),
				BestDistance: best.DistanceKm,
				BestPenalty:  best.PenaltyCost,
				Routes:       len(best.Routes),
			})
		}

		next := make([][]int, 0, cfg.PopulationSize)
		next = append(next, append([]int(nil), population[champion]...))

		fitness := fitnesses(evals)
		for len(next) < cfg.PopulationSize {
			parent1, parent2 := selectParents(rng, population, fitness, cfg.TournamentSize)
			offspring := orderCrossover(rng, parent1, parent2)
			swapMutate(rng, offspring, cfg.MutationRate)
			next = append(next, offspring)
		}

		population = next
	}

	return &Solution{
		Best:        bestPerm,
		Routes:      best.Routes,
		DistanceKm:  best.DistanceKm,
		PenaltyCost: best.PenaltyCost,
		TotalCost:   best.TotalCost(),
		Fitness:     best.Fitness,
		Generations: cfg.Generations,
	}, nil
}

func fitnesses(evals []Evaluation) []float64 {
	out := make([]float64, len(evals))
	for i, e := range evals {
		out[i] = e.Fitness
	}
	return out
}
