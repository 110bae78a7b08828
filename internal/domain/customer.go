package domain

// DepotID is the conventional identifier of the depot stop. The depot has
// zero demand, zero service time, and a time window spanning the whole
// planning horizon.
const DepotID = 0

// HorizonMin is the length of the planning horizon in minutes (one day).
const HorizonMin = 1440

// Represents a single delivery stop served by the fleet.
// Times are minutes from the start of the planning day; ReadyMin and DueMin
// bound the service start, ServiceMin is consumed at the stop. Immutable
// once loaded.
type Customer struct {
	ID         int
	Name       string
	Coord      Coordinates
	Demand     float64
	ReadyMin   float64
	DueMin     float64
	ServiceMin float64
}

// Depot builds the depot stop at the given coordinates.
func Depot(coord Coordinates) Customer {
	return Customer{
		ID:     DepotID,
		Name:   "Depot",
		Coord:  coord,
		DueMin: HorizonMin,
	}
}

// IsDepot reports whether this customer is the depot stop.
func (c Customer) IsDepot() bool { return c.ID == DepotID }
