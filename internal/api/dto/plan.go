package dto

type PlanRequest struct {
	VehicleCapacity float64 `json:"vehicle_capacity"`
	PopulationSize  int     `json:"population_size"`
	Generations     int     `json:"generations"`
	MutationRate    float64 `json:"mutation_rate"`
	TournamentSize  int     `json:"tournament_size"`
	LatePenalty     float64 `json:"late_penalty_per_min"`
	Seed            int64   `json:"seed"`
	RejectOversize  bool    `json:"reject_oversize"`
}

type PlanStopResponse struct {
	CustomerID   int     `json:"customer_id"`
	Name         string  `json:"name"`
	Arrive       string  `json:"arrive"`
	ServiceStart string  `json:"service_start"`
	Depart       string  `json:"depart"`
	WaitMin      float64 `json:"wait_min"`
	TardyMin     float64 `json:"tardy_min"`
}

type PlanRouteResponse struct {
	Vehicle     int                `json:"vehicle"`
	LoadUnits   float64            `json:"load_units"`
	DistanceKm  float64            `json:"distance_km"`
	ReturnAt    string             `json:"return_at"`
	PenaltyCost float64            `json:"penalty_cost"`
	Stops       []PlanStopResponse `json:"stops"`
}

type PlanResponse struct {
	Vehicles    int                 `json:"vehicles"`
	DistanceKm  float64             `json:"distance_km"`
	PenaltyCost float64             `json:"penalty_cost"`
	TotalCost   float64             `json:"total_cost"`
	Fitness     float64             `json:"fitness"`
	Generations int                 `json:"generations"`
	Routes      []PlanRouteResponse `json:"routes"`
}
