package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ougirez/fieldecon/internal/domain"
)

var ErrMiss = errors.New("cache miss")

type Config struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// TotalsCache keeps the last computed totals of a case.
type TotalsCache interface {
	Get(ctx context.Context, caseID uuid.UUID) (domain.CaseTotals, error)
	Set(ctx context.Context, totals domain.CaseTotals) error
	Delete(ctx context.Context, caseID uuid.UUID) error
}

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisCache struct {
	client Client
	prefix string
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisCache(client Client, prefix string, ttl time.Duration) TotalsCache {
	if prefix == "" {
		prefix = "fieldecon:"
	}
	return &redisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *redisCache) key(caseID uuid.UUID) string {
	return c.prefix + "totals:" + caseID.String()
}

func (c *redisCache) Get(ctx context.Context, caseID uuid.UUID) (domain.CaseTotals, error) {
	var totals domain.CaseTotals

	data, err := c.client.Get(ctx, c.key(caseID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return totals, ErrMiss
	}
	if err != nil {
		return totals, fmt.Errorf("redis get: %w", err)
	}

	if err = sonic.Unmarshal(data, &totals); err != nil {
		return totals, fmt.Errorf("unmarshal totals: %w", err)
	}
	return totals, nil
}

func (c *redisCache) Set(ctx context.Context, totals domain.CaseTotals) error {
	data, err := sonic.Marshal(totals)
	if err != nil {
		return fmt.Errorf("marshal totals: %w", err)
	}
	if err = c.client.Set(ctx, c.key(totals.CaseID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, caseID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(caseID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

type nopCache struct{}

// NewNop returns a cache that stores nothing and always misses.
func NewNop() TotalsCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, uuid.UUID) (domain.CaseTotals, error) {
	return domain.CaseTotals{}, ErrMiss
}

func (nopCache) Set(context.Context, domain.CaseTotals) error { return nil }

func (nopCache) Delete(context.Context, uuid.UUID) error { return nil }
