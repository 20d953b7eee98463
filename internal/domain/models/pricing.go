package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceSet maps a price column (Baseprice, Adult, Child, ...) to its value.
// Invalid entries are NULL or non-numeric cells and are never priced.
type PriceSet map[string]decimal.NullDecimal

// Columns returns the column names in a stable order.
func (p PriceSet) Columns() []string {
	cols := make([]string, 0, len(p))
	for col := range p {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func (p PriceSet) Clone() PriceSet {
	if p == nil {
		return nil
	}
	out := make(PriceSet, len(p))
	for col, v := range p {
		out[col] = v
	}
	return out
}

// MarshalJSON writes numeric prices with exactly two decimals.
func (p PriceSet) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range p.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v := p[col]
		if !v.Valid {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(v.Decimal.StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TicketTypeRow is the price row of one (route, start city, end city) pair.
type TicketTypeRow struct {
	ID            domain.ID `json:"ticket_type_id"`
	RouteID       domain.ID `json:"route_id"`
	StartCityID   domain.ID `json:"start_point_city_id"`
	EndCityID     domain.ID `json:"end_point_city_id"`
	StartCityName string    `json:"start_city_name,omitempty"`
	EndCityName   string    `json:"end_city_name,omitempty"`
	Prices        PriceSet  `json:"prices"`
}

type DiscountType string

const (
	DiscountDecrease DiscountType = "decrease"
	DiscountIncrease DiscountType = "increase"
	DiscountAmount   DiscountType = "amount"
)

// RouteDiscount adjusts every price of a route on the days of [FromDate, ToDate].
// Decrease and increase are percentages; amount is added as is and may be negative.
type RouteDiscount struct {
	ID        domain.ID           `json:"discount_id"`
	RouteID   domain.ID           `json:"route_id"`
	FromDate  time.Time           `json:"from_date"`
	ToDate    time.Time           `json:"to_date"`
	Type      DiscountType        `json:"discount_type"`
	Value     decimal.NullDecimal `json:"discount_value"`
	IsDeleted bool                `json:"is_deleted"`
}

// CurrencyPair is an ordered conversion, From -> To.
type CurrencyPair struct {
	From string
	To   string
}
