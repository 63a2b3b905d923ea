package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/airportops/config"
	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the two flight read views with a short TTL. Flight
// mutations invalidate both keys; stale entries also age out on their own.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	return c.getFlights(ctx, flightsKey())
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.setFlights(ctx, flightsKey(), flights)
}

func (c *RedisCache) GetFlightsToday(ctx context.Context) ([]domain.Flight, error) {
	return c.getFlights(ctx, flightsTodayKey())
}

func (c *RedisCache) SetFlightsToday(ctx context.Context, flights []domain.Flight) error {
	return c.setFlights(ctx, flightsTodayKey(), flights)
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey(), flightsTodayKey()).Err()
}

func (c *RedisCache) getFlights(ctx context.Context, key string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) setFlights(ctx context.Context, key string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func flightsTodayKey() string {
	return "cache:flights:today"
}
