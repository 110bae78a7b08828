package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"fleet-route-solver/internal/api/dto"
	"fleet-route-solver/internal/ports"
	"fleet-route-solver/internal/services"
	"fleet-route-solver/internal/solver"
)

type PlanHandler struct {
	Repo     ports.CustomerRepository
	Provider ports.TravelMatrixProvider
}

// Plan runs the evolutionary fleet planner over the stored customer set.
// Unset request fields fall back to the solver's shipped tuning.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	cfg := solver.DefaultConfig()

	if req.VehicleCapacity != 0 {
		cfg.VehicleCapacity = req.VehicleCapacity
	}
	if cfg.VehicleCapacity <= 0 {
		writeError(w, r, http.StatusBadRequest, "vehicle_capacity must be positive")
		return
	}

	if req.PopulationSize != 0 {
		cfg.PopulationSize = req.PopulationSize
	}
	if cfg.PopulationSize < 2 || cfg.PopulationSize > 2000 {
		writeError(w, r, http.StatusBadRequest, "population_size must be between 2 and 2000")
		return
	}

	if req.Generations != 0 {
		cfg.Generations = req.Generations
	}
	if cfg.Generations < 1 || cfg.Generations > 100000 {
		writeError(w, r, http.StatusBadRequest, "generations must be between 1 and 100000")
		return
	}

	if req.MutationRate != 0 {
		cfg.MutationRate = req.MutationRate
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		writeError(w, r, http.StatusBadRequest, "mutation_rate must be in [0, 1]")
		return
	}

	if req.TournamentSize != 0 {
		cfg.TournamentSize = req.TournamentSize
	}
	if cfg.TournamentSize < 2 {
		writeError(w, r, http.StatusBadRequest, "tournament_size must be at least 2")
		return
	}

	if req.LatePenalty != 0 {
		cfg.TardinessPenaltyPerMin = req.LatePenalty
	}
	if cfg.TardinessPenaltyPerMin < 0 {
		writeError(w, r, http.StatusBadRequest, "late_penalty_per_min must be non-negative")
		return
	}

	cfg.Seed = req.Seed
	if req.RejectOversize {
		cfg.Oversize = solver.OversizeReject
	}

	plan, err := services.PlanFleet(
		r.Context(),
		services.PlanFleetRequest{Solver: cfg},
		h.Repo,
		h.Provider,
	)
	if err != nil {
		log.Printf("plan fleet failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(plan *services.FleetPlan) dto.PlanResponse {
	res := dto.PlanResponse{
		Vehicles:    plan.Vehicles,
		DistanceKm:  plan.DistanceKm,
		PenaltyCost: plan.PenaltyCost,
		TotalCost:   plan.TotalCost,
		Fitness:     plan.Fitness,
		Generations: plan.Generations,
		Routes:      make([]dto.PlanRouteResponse, 0, len(plan.Routes)),
	}

	for _, route := range plan.Routes {
		stops := make([]dto.PlanStopResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			stops = append(stops, dto.PlanStopResponse{
				CustomerID:   s.CustomerID,
				Name:         s.Name,
				Arrive:       services.ClockHHMM(s.ArriveMin),
				ServiceStart: services.ClockHHMM(s.ServiceStartMin),
				Depart:       services.ClockHHMM(s.DepartMin),
				WaitMin:      s.WaitMin,
				TardyMin:     s.TardyMin,
			})
		}

		res.Routes = append(res.Routes, dto.PlanRouteResponse{
			Vehicle:     route.Vehicle,
			LoadUnits:   route.LoadUnits,
			DistanceKm:  route.DistanceKm,
			ReturnAt:    services.ClockHHMM(route.ReturnMin),
			PenaltyCost: route.PenaltyCost,
			Stops:       stops,
		})
	}

	return res
}
