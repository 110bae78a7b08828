package solver

import "math/rand"

// selectParent runs one tournament: k entrants drawn without replacement
// from the population, winner is the entrant with the maximum fitness (ties
// broken by the earliest population index, which the stable draw order
// guarantees).
func selectParent(rng *rand.Rand, population [][]int, fitness []float64, k int) []int {
	if k > len(population) {
		k = len(population)
	}

	best := -1
	for _, idx := range rng.Perm(len(population))[:k] {
		if best == -1 || fitness[idx] > fitness[best] {
			best = idx
		}
	}
	return population[best]
}

// selectParents draws two independent tournaments. The tournaments may
// overlap, so the same chromosome can come back as both parents.
func selectParents(rng *rand.Rand, population [][]int, fitness []float64, k int) ([]int, []int) {
	return selectParent(rng, population, fitness, k),
		selectParent(rng, population, fitness, k)
}

// orderCrossover produces one child by OX: a random [start, end] slice is
// copied verbatim from parent1, the remaining positions are filled
// left-to-right with parent2's genes in parent2 order, skipping genes the
// segment already placed. The child is always a permutation of the same
// customer set as its parents.
func orderCrossover(rng *rand.Rand, parent1, parent2 []int) []int {
	size := len(parent1)
	if size < 2 {
		return append([]int(nil), parent1...)
	}

	// Two distinct cut points, ordered.
	cuts := rng.Perm(size)[:2]
	start, end := cuts[0], cuts[1]
	if start > end {
		start, end = end, start
	}

	child := make([]int, size)
	inSegment := make(map[int]bool, end-start+1)
	for i := start; i <= end; i++ {
		child[i] = parent1[i]
		inSegment[parent1[i]] = true
	}

	pos := 0
	for _, gene := range parent2 {
		if inSegment[gene] {
			continue
		}
		for pos >= start && pos <= end {
			pos++
		}
		child[pos] = gene
		pos++
	}

	return child
}

// swapMutate exchanges two distinct positions with probability rate. The
// coin flip is per offspring, not per gene.
func swapMutate(rng *rand.Rand, individual []int, rate float64) {
	if len(individual) < 2 || rng.Float64() >= rate {
		return
	}
	idx := rng.Perm(len(individual))[:2]
	individual[idx[0]], individual[idx[1]] = individual[idx[1]], individual[idx[0]]
}
