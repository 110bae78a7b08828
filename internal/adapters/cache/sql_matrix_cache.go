package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fleet-route-solver/internal/domain"
)

// Postgres backed travel-leg cache. Same table shape as the SQLite variant,
// but uses positional $n placeholders and ANY() array matching.
type SQLMatrixCache struct {
	DB *sql.DB
}

func NewSQLMatrixCache(db *sql.DB) *SQLMatrixCache {
	return &SQLMatrixCache{DB: db}
}

func (s *SQLMatrixCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]domain.Leg, error) {
	if s.DB == nil {
		return nil, errors.New("matrix cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get matrix cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]domain.Leg{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]domain.Leg{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
        destination,
        distance_km,
        travel_min
    FROM travel_leg_cache
    WHERE origin = $1
        AND destination = ANY($2);
	`, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: query travel_leg_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Leg, len(uniq))
	for rows.Next() {
		var dest string
		var km, min float64
		if err := rows.Scan(&dest, &km, &min); err != nil {
			return nil, fmt.Errorf("get matrix cache: scan rows: %w", err)
		}
		out[dest] = domain.Leg{DistanceKm: km, TravelMin: min}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get matrix cache: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLMatrixCache) PutMany(
	ctx context.Context,
	origin string,
	legs map[string]domain.Leg,
) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert matrix cache: origin must not be empty")
	}

	if len(legs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_leg_cache (
        origin,
        destination,
        distance_km,
        travel_min
    )
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (origin, destination)
    DO UPDATE SET
        distance_km = EXCLUDED.distance_km,
        travel_min = EXCLUDED.travel_min;
	`)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, leg := range legs {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert matrix cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest, leg.DistanceKm, leg.TravelMin); err != nil {
			return fmt.Errorf("insert matrix cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert matrix cache commit: %w", err)
	}

	return nil
}
