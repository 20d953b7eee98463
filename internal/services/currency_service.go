package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

// CurrencyService resolves exchange rates: cache, then store, then 1.
type CurrencyService struct {
	log   *zap.Logger
	store RateStore
	cache RateCache
	pair  models.CurrencyPair
}

// NewCurrencyService builds the resolver for pair, the conversion applied to
// fares picked up in converted-currency cities. cache may be nil.
func NewCurrencyService(log *zap.Logger, store RateStore, cache RateCache, pair models.CurrencyPair) *CurrencyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CurrencyService{log: log, store: store, cache: cache, pair: pair}
}

// RateFor returns the rate for a pickup city. Cities without the conversion
// flag are priced as stored.
func (s *CurrencyService) RateFor(ctx context.Context, city models.City) (decimal.Decimal, error) {
	if !city.FromUkraine {
		return decimal.NewFromInt(1), nil
	}
	return s.Rate(ctx, s.pair)
}

// Rate returns the stored rate for pair. A missing or non-positive rate
// yields 1.
func (s *CurrencyService) Rate(ctx context.Context, pair models.CurrencyPair) (decimal.Decimal, error) {
	const op = "currency.rate"
	one := decimal.NewFromInt(1)

	if s.cache != nil {
		rate, err := s.cache.GetRate(ctx, pair)
		switch {
		case err == nil && rate.IsPositive():
			return rate, nil
		case err != nil && !domain.IsNotFound(err):
			s.log.Warn("rate cache lookup failed", zap.String("op", op), zap.Error(err))
		}
	}

	rate, err := s.store.FindRate(ctx, pair)
	if err != nil {
		if domain.IsNotFound(err) {
			s.log.Debug("exchange rate not found, using 1",
				zap.String("op", op),
				zap.String("from", pair.From),
				zap.String("to", pair.To),
			)
			return one, nil
		}
		return decimal.Zero, err
	}
	if !rate.IsPositive() {
		rate = one
	}

	if s.cache != nil {
		if err := s.cache.SetRate(ctx, pair, rate); err != nil {
			s.log.Warn("rate cache store failed", zap.String("op", op), zap.Error(err))
		}
	}
	return rate, nil
}
