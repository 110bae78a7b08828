package services

import (
	"fmt"
	"math"

	"fleet-route-solver/internal/domain"
)

// Timing breakdown for one customer visit. All fields are minutes after
// the vehicle's departure from the depot.
type StopTiming struct {
	CustomerID      int
	Name            string
	ArriveMin       float64
	WaitMin         float64
	ServiceStartMin float64
	DepartMin       float64
	TardyMin        float64
}

// One vehicle's schedule: its stops in visit order plus route totals.
type RouteItinerary struct {
	Vehicle     int
	Stops       []StopTiming
	LoadUnits   float64
	DistanceKm  float64
	ReturnMin   float64
	PenaltyCost float64
}

// BuildItinerary replays decoded routes against the travel matrix and
// produces per-stop timing. The walk mirrors route evaluation: each vehicle
// starts at the depot at minute zero, waits out early arrivals for free, and
// accrues tardiness cost for late service starts.
func BuildItinerary(
	p *domain.Problem,
	routes [][]int,
	tardinessPenaltyPerMin float64,
) ([]RouteItinerary, error) {
	if p == nil {
		return nil, fmt.Errorf("build itinerary: problem is nil")
	}

	out := make([]RouteItinerary, 0, len(routes))
	for vi, route := range routes {
		it := RouteItinerary{Vehicle: vi + 1, Stops: make([]StopTiming, 0, len(route))}

		clock := 0.0
		last := domain.DepotID
		for _, id := range route {
			c, ok := p.Customer(id)
			if !ok {
				return nil, fmt.Errorf("build itinerary: unknown customer %d in route %d", id, vi+1)
			}

			arrive := clock + p.Matrix.TravelMin(last, id)
			serviceStart := math.Max(arrive, c.ReadyMin)
			tardy := math.Max(0, serviceStart-c.DueMin)
			depart := serviceStart + c.ServiceMin

			it.Stops = append(it.Stops, StopTiming{
				CustomerID:      id,
				Name:            c.Name,
				ArriveMin:       arrive,
				WaitMin:         serviceStart - arrive,
				ServiceStartMin: serviceStart,
				DepartMin:       depart,
				TardyMin:        tardy,
			})

			it.LoadUnits += c.Demand
			it.DistanceKm += p.Matrix.DistanceKm(last, id)
			it.PenaltyCost += tardy * tardinessPenaltyPerMin

			clock = depart
			last = id
		}

		if last != domain.DepotID {
			it.DistanceKm += p.Matrix.DistanceKm(last, domain.DepotID)
			it.ReturnMin = clock + p.Matrix.TravelMin(last, domain.DepotID)
		}

		out = append(out, it)
	}

	return out, nil
}

// ClockHHMM renders minutes after midnight as a wall-clock "HH:MM" string.
// Non-finite values render as "--:--".
func ClockHHMM(min float64) string {
	if math.IsInf(min, 0) || math.IsNaN(min) || min < 0 {
		return "--:--"
	}

	total := int(math.Round(min))
	h := (total / 60) % 24
	m := total % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
