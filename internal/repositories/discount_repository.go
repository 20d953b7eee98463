package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type DiscountRepository struct {
	DB *sql.DB
}

func (r DiscountRepository) db() *sql.DB {
	return pickDB(r.DB)
}

// ListCovering returns the non-deleted discounts of a route whose range
// contains day, newest first. The id column keeps its historical spelling.
func (r DiscountRepository) ListCovering(ctx context.Context, routeID domain.ID, day time.Time) ([]models.RouteDiscount, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT discound_id, routeRouteId, from_date, to_date,
		       COALESCE(discount_type, ''), discount_value, is_deleted
		FROM route_discount
		WHERE routeRouteId = ?
		  AND is_deleted = 0
		  AND from_date <= ? AND to_date >= ?
		ORDER BY discound_id DESC`, routeID, dateArg(day), dateArg(day))
	if err != nil {
		return nil, fmt.Errorf("query route discounts: %w", err)
	}
	defer rows.Close()

	out := []models.RouteDiscount{}
	for rows.Next() {
		var (
			d     models.RouteDiscount
			kind  string
			value sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.RouteID, &d.FromDate, &d.ToDate, &kind, &value, &d.IsDeleted); err != nil {
			return out, fmt.Errorf("scan route discount: %w", err)
		}
		d.Type = models.DiscountType(utils.TrimOrEmpty(kind))
		d.Value = utils.ParsePrice(value.String)
		out = append(out, d)
	}
	return out, rows.Err()
}
