package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// Fare is a price set after currency conversion (Base) and after the route
// discount (Updated).
type Fare struct {
	Rate     decimal.Decimal
	Discount *models.RouteDiscount
	Base     models.PriceSet
	Updated  models.PriceSet
}

type FareCalculator struct {
	currency  *CurrencyService
	discounts *DiscountService
}

func NewFareCalculator(currency *CurrencyService, discounts *DiscountService) *FareCalculator {
	return &FareCalculator{currency: currency, discounts: discounts}
}

// Quote resolves the exchange rate for a trip boarding in pickupCity and the
// discount of routeID active on day.
func (c *FareCalculator) Quote(ctx context.Context, routeID domain.ID, pickupCity models.City, day time.Time) (decimal.Decimal, *models.RouteDiscount, error) {
	var (
		rate     decimal.Decimal
		discount *models.RouteDiscount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rate, err = c.currency.RateFor(gctx, pickupCity)
		return err
	})
	g.Go(func() error {
		var err error
		discount, err = c.discounts.Active(gctx, routeID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, nil, err
	}
	return rate, discount, nil
}

// Price quotes the trip and adjusts prices with the result.
func (c *FareCalculator) Price(ctx context.Context, routeID domain.ID, pickupCity models.City, day time.Time, prices models.PriceSet) (Fare, error) {
	rate, discount, err := c.Quote(ctx, routeID, pickupCity, day)
	if err != nil {
		return Fare{}, err
	}
	base, updated := utils.AdjustPrices(prices, rate, discount)
	return Fare{Rate: rate, Discount: discount, Base: base, Updated: updated}, nil
}
