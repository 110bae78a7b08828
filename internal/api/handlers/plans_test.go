package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-route-solver/internal/adapters/distance"
	"fleet-route-solver/internal/api/dto"
	"fleet-route-solver/internal/domain"
)

type stubCustomerRepo struct{ customers []domain.Customer }

func (s *stubCustomerRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers, nil
}

func testPlanHandler() *PlanHandler {
	customers := []domain.Customer{
		domain.Depot(domain.Coordinates{}),
		{ID: 1, Name: "Retail Park", Demand: 10, DueMin: domain.HorizonMin, ServiceMin: 5},
		{ID: 2, Name: "Market Row", Demand: 20, DueMin: domain.HorizonMin, ServiceMin: 5},
	}

	legs := []distance.MockLeg{}
	km := map[[2]int]float64{{0, 1}: 4, {0, 2}: 5, {1, 2}: 2}
	for pair, d := range km {
		legs = append(legs,
			distance.MockLeg{From: pair[0], To: pair[1], Km: d, Min: d},
			distance.MockLeg{From: pair[1], To: pair[0], Km: d, Min: d},
		)
	}

	return &PlanHandler{
		Repo:     &stubCustomerRepo{customers: customers},
		Provider: distance.NewMockMatrixProvider(legs),
	}
}

func postPlan(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanHandlerReturnsPlan(t *testing.T) {
	h := testPlanHandler()

	rec := postPlan(t, h, `{"population_size": 20, "generations": 30, "seed": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Generations != 30 {
		t.Fatalf("expected 30 generations, got %d", res.Generations)
	}
	if res.Vehicles != len(res.Routes) || res.Vehicles == 0 {
		t.Fatalf("inconsistent vehicle count: %d vs %d routes", res.Vehicles, len(res.Routes))
	}

	seen := map[int]bool{}
	for _, route := range res.Routes {
		for _, s := range route.Stops {
			seen[s.CustomerID] = true
		}
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("plan missing customers: %v", seen)
	}
}

func TestPlanHandlerDefaultsOnEmptyBody(t *testing.T) {
	h := testPlanHandler()

	// An empty body runs the shipped tuning; the dataset is small enough
	// for the full 500 generations to finish quickly.
	rec := postPlan(t, h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPlanHandlerRejectsBadRequests(t *testing.T) {
	h := testPlanHandler()

	cases := map[string]string{
		"unknown field":     `{"vehicles": 3}`,
		"malformed json":    `{"generations": `,
		"trailing object":   `{"generations": 10}{"generations": 20}`,
		"bad mutation rate": `{"mutation_rate": 1.5}`,
		"tiny population":   `{"population_size": 1}`,
		"small tournament":  `{"tournament_size": 1}`,
		"negative penalty":  `{"late_penalty_per_min": -1}`,
	}

	for name, body := range cases {
		rec := postPlan(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestPlanHandlerMethodNotAllowed(t *testing.T) {
	h := testPlanHandler()

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("expected Allow: POST, got %q", allow)
	}
}
