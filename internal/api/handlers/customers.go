package handlers

import (
	"log"
	"net/http"

	"fleet-route-solver/internal/api/dto"
	"fleet-route-solver/internal/ports"
	"fleet-route-solver/internal/services"
)

// CustomerHandler exposes read-only customer retrieval endpoints.
type CustomerHandler struct {
	Repo ports.CustomerRepository
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	customers, err := h.Repo.ListCustomers(r.Context())
	if err != nil {
		log.Printf("list customers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCustomersResponse{
		Customers: make([]dto.CustomerResponse, 0, len(customers)),
	}
	for _, c := range customers {
		res.Customers = append(res.Customers, dto.CustomerResponse{
			CustomerID: c.ID,
			Name:       c.Name,
			Lon:        c.Coord.Lon,
			Lat:        c.Coord.Lat,
			Demand:     c.Demand,
			Ready:      services.ClockHHMM(c.ReadyMin),
			Due:        services.ClockHHMM(c.DueMin),
			ReadyMin:   c.ReadyMin,
			DueMin:     c.DueMin,
			ServiceMin: c.ServiceMin,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
