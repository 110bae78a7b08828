package solver

import (
	"math/rand"
	"sync"

	"fleet-route-solver/internal/domain"
)

// initPopulation creates size independent uniformly-random shuffles of the
// customer IDs. Duplicate permutations across individuals are allowed.
func initPopulation(rng *rand.Rand, ids []int, size int) [][]int {
	population := make([][]int, size)
	for i := range population {
		individual := append([]int(nil), ids...)
		rng.Shuffle(len(individual), func(a, b int) {
			individual[a], individual[b] = individual[b], individual[a]
		})
		population[i] = individual
	}
	return population
}

// evaluateAll decodes and scores every chromosome. Evaluations are pure and
// independent, so they run on a bounded worker pool; results are written
// into a slice indexed by population position so downstream tie-breaking by
// first occurrence sees the original order.
func evaluateAll(p *domain.Problem, cfg Config, population [][]int) []Evaluation {
	evals := make([]Evaluation, len(population))

	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup

	for i, individual := range population {
		wg.Add(1)
		go func(i int, perm []int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			evals[i] = Evaluate(perm, p, cfg)
		}(i, individual)
	}

	wg.Wait()
	return evals
}

// championIndex returns the index of the maximum fitness, ties broken by
// first occurrence.
func championIndex(evals []Evaluation) int {
	best := 0
	for i := 1; i < len(evals); i++ {
		if evals[i].Fitness > evals[best].Fitness {
			best = i
		}
	}
	return best
}
