package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

// RateCache keeps exchange rates in redis. A nil client disables it and every
// lookup misses.
type RateCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRateCache(redisClient *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{redis: redisClient, ttl: ttl}
}

func (c *RateCache) GetRate(ctx context.Context, pair models.CurrencyPair) (decimal.Decimal, error) {
	if c == nil || c.redis == nil {
		return decimal.Zero, domain.NotFoundError{Resource: "cached exchange rate"}
	}
	data, err := c.redis.Get(ctx, rateKey(pair)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, domain.NotFoundError{Resource: "cached exchange rate", Err: err}
		}
		return decimal.Zero, fmt.Errorf("redis get rate: %w", err)
	}

	rate, err := decimal.NewFromString(data)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse cached rate: %w", err)
	}
	return rate, nil
}

func (c *RateCache) SetRate(ctx context.Context, pair models.CurrencyPair, rate decimal.Decimal) error {
	if c == nil || c.redis == nil || c.ttl <= 0 {
		return nil
	}
	if err := c.redis.Set(ctx, rateKey(pair), rate.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set rate: %w", err)
	}
	return nil
}

func rateKey(pair models.CurrencyPair) string {
	return fmt.Sprintf("fx:%s:%s", normalizeCode(pair.From), normalizeCode(pair.To))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
