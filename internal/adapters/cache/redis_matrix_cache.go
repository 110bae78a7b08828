package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-route-solver/internal/domain"
)

// Redis backed travel-leg cache. One hash per origin, destination keys as
// hash fields, values encoded as "<distance_km>|<travel_min>".
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

func originKey(origin string) string {
	return "matrix:" + origin
}

func encodeLeg(leg domain.Leg) string {
	return strconv.FormatFloat(leg.DistanceKm, 'f', -1, 64) +
		"|" +
		strconv.FormatFloat(leg.TravelMin, 'f', -1, 64)
}

func decodeLeg(raw string) (domain.Leg, error) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return domain.Leg{}, fmt.Errorf("malformed leg value %q", raw)
	}

	km, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("parse distance in %q: %w", raw, err)
	}

	min, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("parse travel time in %q: %w", raw, err)
	}

	return domain.Leg{DistanceKm: km, TravelMin: min}, nil
}

func (r *RedisMatrixCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]domain.Leg, error) {
	if r.Client == nil {
		return nil, errors.New("matrix cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get matrix cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]domain.Leg{}, nil
	}

	vals, err := r.Client.HMGet(ctx, originKey(origin), destinations...).Result()
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: redis hmget: %w", err)
	}

	out := make(map[string]domain.Leg, len(destinations))
	for i, v := range vals {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("get matrix cache: unexpected value type %T", v)
		}

		leg, err := decodeLeg(raw)
		if err != nil {
			return nil, fmt.Errorf("get matrix cache: %w", err)
		}
		out[destinations[i]] = leg
	}

	return out, nil
}

func (r *RedisMatrixCache) PutMany(
	ctx context.Context,
	origin string,
	legs map[string]domain.Leg,
) error {
	if r.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert matrix cache: origin must not be empty")
	}

	if len(legs) == 0 {
		return nil
	}

	fields := make(map[string]any, len(legs))
	for dest, leg := range legs {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert matrix cache: empty destination key")
		}
		fields[dest] = encodeLeg(leg)
	}

	key := originKey(origin)
	if err := r.Client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("insert matrix cache: redis hset: %w", err)
	}

	if r.TTL > 0 {
		if err := r.Client.Expire(ctx, key, r.TTL).Err(); err != nil {
			return fmt.Errorf("insert matrix cache: redis expire: %w", err)
		}
	}

	return nil
}
