package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
	"github.com/shopspring/decimal"
)

type CurrencyRepository struct {
	DB *sql.DB
}

func (r CurrencyRepository) db() *sql.DB {
	return pickDB(r.DB)
}

// FindRate returns the stored rate for pair. A missing row or an unparsable
// rate is reported as not found.
func (r CurrencyRepository) FindRate(ctx context.Context, pair models.CurrencyPair) (decimal.Decimal, error) {
	var raw sql.NullString
	err := r.db().QueryRowContext(ctx, `
		SELECT rate
		FROM currency_exchange_rate
		WHERE from_currency = ? AND to_currency = ?
		ORDER BY id DESC
		LIMIT 1`, pair.From, pair.To).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.NotFoundError{Resource: "exchange rate", Err: err}
		}
		return decimal.Zero, fmt.Errorf("query exchange rate: %w", err)
	}

	rate := utils.ParsePrice(raw.String)
	if !rate.Valid {
		return decimal.Zero, domain.NotFoundError{Resource: "exchange rate"}
	}
	return rate.Decimal, nil
}
