package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"fleet-route-solver/internal/adapters/cache"
	"fleet-route-solver/internal/adapters/distance"
	"fleet-route-solver/internal/adapters/repositories"
	"fleet-route-solver/internal/api"
	"fleet-route-solver/internal/config"
	"fleet-route-solver/internal/platform/db"
	"fleet-route-solver/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, OSRM, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/customers.json")

	conn, repo, matrixCache, err := openStorage(seedPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// An external Redis replaces the SQL-backed leg cache when configured.
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		ttl := time.Duration(config.GetInt("REDIS_TTL_HOURS", 24)) * time.Hour
		matrixCache = cache.NewRedisMatrixCache(client, ttl)
		log.Printf("Using Redis travel-leg cache addr=%s ttl=%s", addr, ttl)
	}

	provider, err := buildProvider(matrixCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(repo, provider)

	// Timeouts are tuned for cold-cache matrix building plus a full solve.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage opens Postgres when DATABASE_URL is set, SQLite otherwise, and
// makes sure the schema exists and the seed data is loaded.
func openStorage(seedPath string) (*sql.DB, ports.CustomerRepository, ports.MatrixCache, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}

		if err := repositories.InitSchemaPostgres(conn); err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		if err := repositories.SeedFromJSONPostgres(conn, seedPath); err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}

		return conn, repositories.NewSQLCustomerRepository(conn), cache.NewSQLMatrixCache(conn), nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	return conn, repositories.NewSqliteCustomerRepository(conn), cache.NewSqliteMatrixCache(conn), nil
}

// buildProvider returns the OSRM matrix provider when OSRM_BASE_URL is set,
// falling back to straight-line estimates for offline runs.
func buildProvider(matrixCache ports.MatrixCache) (ports.TravelMatrixProvider, error) {
	if baseURL := os.Getenv("OSRM_BASE_URL"); strings.TrimSpace(baseURL) != "" {
		profile := config.Get("OSRM_PROFILE", "driving")
		return distance.NewOSRMMatrixProvider(baseURL, profile, matrixCache)
	}

	speedKmh := config.GetFloat("VEHICLE_SPEED_KMH", 30)
	log.Printf("OSRM_BASE_URL not set, using straight-line distances at %.0f km/h", speedKmh)
	return distance.NewEuclideanMatrixProvider(speedKmh / 60)
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
