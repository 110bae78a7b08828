package domain

import "math"

// Unreachable marks a pair of stops with no road connection between them.
// It must propagate through cost arithmetic rather than collapse to zero.
var Unreachable = math.Inf(1)

// IsUnreachable reports whether a distance or travel-time value is the
// unreachable sentinel.
func IsUnreachable(v float64) bool { return math.IsInf(v, 1) }

// Leg is the travel cost between two stops: road distance in kilometers and
// drive time in minutes.
type Leg struct {
	DistanceKm float64
	TravelMin  float64
}

// TravelMatrix holds the precomputed travel legs for every ordered pair of
// known stop identifiers, including self-pairs (zero legs). It is built once
// during setup and read-only for the rest of the run.
type TravelMatrix struct {
	legs map[[2]int]Leg
}

// NewTravelMatrix builds a matrix from explicit legs. Self-pairs missing from
// the input are filled with zero legs for every ID seen.
func NewTravelMatrix(legs map[[2]int]Leg) TravelMatrix {
	m := TravelMatrix{legs: make(map[[2]int]Leg, len(legs))}
	for pair, leg := range legs {
		m.legs[pair] = leg
	}
	for pair := range legs {
		for _, id := range pair {
			self := [2]int{id, id}
			if _, ok := m.legs[self]; !ok {
				m.legs[self] = Leg{}
			}
		}
	}
	return m
}

// Has reports whether the ordered pair is covered by the matrix.
func (m TravelMatrix) Has(from, to int) bool {
	_, ok := m.legs[[2]int{from, to}]
	return ok
}

// Leg returns the travel leg for an ordered pair. Looking up a pair that was
// never loaded is a programming-contract violation; callers are expected to
// validate coverage through NewProblem before decoding.
func (m TravelMatrix) Leg(from, to int) Leg {
	leg, ok := m.legs[[2]int{from, to}]
	if !ok {
		panic("domain: travel matrix queried for unknown pair")
	}
	return leg
}

// DistanceKm returns the road distance for an ordered pair.
func (m TravelMatrix) DistanceKm(from, to int) float64 { return m.Leg(from, to).DistanceKm }

// TravelMin returns the drive time for an ordered pair.
func (m TravelMatrix) TravelMin(from, to int) float64 { return m.Leg(from, to).TravelMin }

// Len returns the number of stored legs.
func (m TravelMatrix) Len() int { return len(m.legs) }
