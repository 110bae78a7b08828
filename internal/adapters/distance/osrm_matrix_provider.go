package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/platform/obs"
	"fleet-route-solver/internal/ports"
)

// OSRMMatrixProvider implements TravelMatrixProvider against an OSRM table
// endpoint (/table/v1/{profile}).
//
// It coordinates:
//   - Persistent per-origin leg caching
//   - A single table call for all stops on cache misses
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMMatrixProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.MatrixCache
}

// NewOSRMMatrixProvider builds a provider for the given OSRM base URL
// (e.g. "http://router.project-osrm.org"). The cache is optional.
func NewOSRMMatrixProvider(baseURL, profile string, cache ports.MatrixCache) (*OSRMMatrixProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}
	if profile == "" {
		profile = "driving"
	}

	return &OSRMMatrixProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		profile: profile,
		cache:   cache,
	}, nil
}

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// BuildMatrix returns the pairwise travel matrix over the given stops.
//
// Cached legs are reused per origin; if any pair is missing the provider
// issues one table request covering all stops (OSRM prices a full table the
// same as a partial one) and back-fills the cache. Null entries in the
// response mark unreachable pairs and become the infinite sentinel.
func (o *OSRMMatrixProvider) BuildMatrix(
	ctx context.Context,
	stops []domain.Customer,
) (_ domain.TravelMatrix, err error) {
	defer obs.Time(ctx, "osrm.BuildMatrix")(&err)

	if len(stops) == 0 {
		return domain.TravelMatrix{}, errors.New("build matrix: stops must not be empty")
	}

	keys := make([]string, len(stops))
	for i, s := range stops {
		keys[i] = s.Coord.Key()
	}

	legs := make(map[[2]int]domain.Leg, len(stops)*len(stops))
	missing := false

	// Self-pairs are zero by definition; the table call never has to cover
	// them.
	for _, s := range stops {
		legs[[2]int{s.ID, s.ID}] = domain.Leg{}
	}

	if o.cache != nil {
		for i, origin := range stops {
			dests := make([]string, 0, len(stops)-1)
			for j, k := range keys {
				if j != i {
					dests = append(dests, k)
				}
			}

			hits, cerr := o.cache.GetMany(ctx, keys[i], dests)
			if cerr != nil {
				return domain.TravelMatrix{}, fmt.Errorf("build matrix: leg cache read: %w", cerr)
			}

			for j, other := range stops {
				if j == i {
					continue
				}
				leg, ok := hits[keys[j]]
				if !ok {
					missing = true
					continue
				}
				legs[[2]int{origin.ID, other.ID}] = leg
			}
		}
	} else {
		missing = true
	}

	if !missing {
		return domain.NewTravelMatrix(legs), nil
	}

	fetched, err := o.fetchTable(ctx, stops)
	if err != nil {
		return domain.TravelMatrix{}, fmt.Errorf("build matrix: %w", err)
	}

	for pair, leg := range fetched {
		legs[pair] = leg
	}

	if o.cache != nil {
		o.writeBack(ctx, stops, keys, fetched)
	}

	return domain.NewTravelMatrix(legs), nil
}

// fetchTable issues one OSRM table request covering every stop and returns
// legs for all ordered non-self pairs.
func (o *OSRMMatrixProvider) fetchTable(
	ctx context.Context,
	stops []domain.Customer,
) (map[[2]int]domain.Leg, error) {
	coords := make([]string, len(stops))
	for i, s := range stops {
		coords[i] = s.Coord.Key()
	}

	endpoint := fmt.Sprintf(
		"%s/table/v1/%s/%s?annotations=%s",
		o.baseURL, o.profile, strings.Join(coords, ";"),
		url.QueryEscape("duration,distance"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("table request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode table response: %w", err)
	}

	if tr.Code != "Ok" {
		return nil, fmt.Errorf("table service returned code %q: %s", tr.Code, tr.Message)
	}

	n := len(stops)
	if len(tr.Distances) != n || len(tr.Durations) != n {
		return nil, fmt.Errorf(
			"table dimensions do not match stops: distances=%d durations=%d stops=%d",
			len(tr.Distances), len(tr.Durations), n,
		)
	}

	out := make(map[[2]int]domain.Leg, n*n)
	for i := 0; i < n; i++ {
		if len(tr.Distances[i]) != n || len(tr.Durations[i]) != n {
			return nil, fmt.Errorf("table row %d has wrong width", i)
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			meters := tr.Distances[i][j]
			seconds := tr.Durations[i][j]

			leg := domain.Leg{DistanceKm: domain.Unreachable, TravelMin: domain.Unreachable}
			if meters != nil && seconds != nil {
				leg = domain.Leg{
					DistanceKm: *meters / 1000.0,
					TravelMin:  *seconds / 60.0,
				}
			}
			out[[2]int{stops[i].ID, stops[j].ID}] = leg
		}
	}

	return out, nil
}

// writeBack persists fetched legs per origin. Unreachable legs are not
// cached so a temporary road closure does not stick forever; cache write
// failures only log, the matrix is already in hand.
func (o *OSRMMatrixProvider) writeBack(
	ctx context.Context,
	stops []domain.Customer,
	keys []string,
	fetched map[[2]int]domain.Leg,
) {
	byID := make(map[int]string, len(stops))
	for i, s := range stops {
		byID[s.ID] = keys[i]
	}

	rows := make(map[string]map[string]domain.Leg, len(stops))
	for pair, leg := range fetched {
		if domain.IsUnreachable(leg.DistanceKm) {
			continue
		}
		origin := byID[pair[0]]
		if rows[origin] == nil {
			rows[origin] = make(map[string]domain.Leg)
		}
		rows[origin][byID[pair[1]]] = leg
	}

	for origin, legs := range rows {
		if err := o.cache.PutMany(ctx, origin, legs); err != nil {
			log.Printf("leg cache write failed origin=%s: %v", origin, err)
		}
	}
}
