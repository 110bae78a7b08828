package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fleet-route-solver/internal/domain"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisMatrixCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisMatrixCache(client, ttl), mr
}

func TestRedisMatrixCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()

	legs := map[string]domain.Leg{
		"88.434,22.975": {DistanceKm: 3.2, TravelMin: 7.5},
		"88.447,22.990": {DistanceKm: 1.1, TravelMin: 2},
	}
	if err := c.PutMany(ctx, "88.430,22.970", legs); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, "88.430,22.970", []string{
		"88.434,22.975",
		"88.447,22.990",
		"88.500,23.000",
	})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 cached legs, got %d", len(got))
	}

	leg, ok := got["88.434,22.975"]
	if !ok {
		t.Fatalf("missing cached leg for first destination")
	}
	if leg.DistanceKm != 3.2 || leg.TravelMin != 7.5 {
		t.Fatalf("unexpected leg values: %+v", leg)
	}

	if _, ok := got["88.500,23.000"]; ok {
		t.Fatalf("uncached destination should be absent from result")
	}
}

func TestRedisMatrixCacheMissIsNotAnError(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)

	got, err := c.GetMany(context.Background(), "0,0", []string{"1,1"})
	if err != nil {
		t.Fatalf("GetMany on empty cache: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no legs, got %d", len(got))
	}
}

func TestRedisMatrixCacheTTL(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	legs := map[string]domain.Leg{"1,1": {DistanceKm: 1, TravelMin: 1}}
	if err := c.PutMany(ctx, "0,0", legs); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	if ttl := mr.TTL(originKey("0,0")); ttl != time.Minute {
		t.Fatalf("expected 1m TTL on origin hash, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, "0,0", []string{"1,1"})
	if err != nil {
		t.Fatalf("GetMany after expiry: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired entries to be gone, got %d legs", len(got))
	}
}

func TestRedisMatrixCacheValidatesInput(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()

	if _, err := c.GetMany(ctx, "", []string{"1,1"}); err == nil {
		t.Fatalf("expected error for empty origin")
	}

	bad := map[string]domain.Leg{" ": {DistanceKm: 1, TravelMin: 1}}
	if err := c.PutMany(ctx, "0,0", bad); err == nil {
		t.Fatalf("expected error for empty destination key")
	}
}
