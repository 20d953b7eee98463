package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPrice renders a price cell, "-" for empty cells.
func FormatPrice(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return FormatMoney(v.Decimal)
}

// ParsePrice parses a raw price cell. Empty or non-numeric input yields an
// invalid value.
func ParsePrice(raw string) decimal.NullDecimal {
	raw = TrimOrEmpty(raw)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
