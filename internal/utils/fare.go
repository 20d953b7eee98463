package utils

import (
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustPrices converts every numeric column with rate, rounds to cents and
// then applies the discount (when not nil), rounding again. It returns the
// converted-only set and the discounted set. Invalid columns are copied as is.
func AdjustPrices(prices models.PriceSet, rate decimal.Decimal, discount *models.RouteDiscount) (base, updated models.PriceSet) {
	if prices == nil {
		return nil, nil
	}
	base = make(models.PriceSet, len(prices))
	updated = make(models.PriceSet, len(prices))
	for col, v := range prices {
		if !v.Valid {
			base[col] = v
			updated[col] = v
			continue
		}
		converted := v.Decimal.Mul(rate).Round(2)
		base[col] = decimal.NewNullDecimal(converted)
		updated[col] = decimal.NewNullDecimal(ApplyDiscount(converted, discount))
	}
	return base, updated
}

// ApplyDiscount applies one discount to a price and rounds to cents.
// An unknown discount type leaves the price untouched.
func ApplyDiscount(price decimal.Decimal, discount *models.RouteDiscount) decimal.Decimal {
	if discount == nil || !discount.Value.Valid {
		return price.Round(2)
	}
	value := discount.Value.Decimal
	switch discount.Type {
	case models.DiscountDecrease:
		price = price.Sub(price.Mul(value).Div(hundred))
	case models.DiscountIncrease:
		price = price.Add(price.Mul(value).Div(hundred))
	case models.DiscountAmount:
		price = price.Add(value)
		if price.IsNegative() {
			price = decimal.Zero
		}
	}
	return price.Round(2)
}
