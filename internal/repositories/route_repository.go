package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intdb "github.com/Abhisheklodhi2001/Austria-Express/internal/db"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	return pickDB(r.DB)
}

func (r RouteRepository) GetByID(ctx context.Context, id domain.ID) (models.Route, error) {
	var route models.Route
	err := r.db().QueryRowContext(ctx,
		`SELECT route_id, COALESCE(title, ''), is_deleted FROM route WHERE route_id = ? LIMIT 1`, id,
	).Scan(&route.ID, &route.Title, &route.IsDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Route{}, fmt.Errorf("query route: %w", err)
	}
	return route, nil
}

// ListClosuresOn returns closures of the given routes whose range contains day.
func (r RouteRepository) ListClosuresOn(ctx context.Context, routeIDs []domain.ID, day time.Time) ([]models.RouteClosure, error) {
	if len(routeIDs) == 0 {
		return []models.RouteClosure{}, nil
	}
	marks, args := intdb.InPlaceholders(routeIDs)
	args = append(args, dateArg(day), dateArg(day))

	rows, err := r.db().QueryContext(ctx, `
		SELECT id, routeRouteId, from_date, to_date
		FROM route_closure
		WHERE routeRouteId IN (`+marks+`)
		  AND from_date <= ? AND to_date >= ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("query route closures: %w", err)
	}
	defer rows.Close()

	out := []models.RouteClosure{}
	for rows.Next() {
		var c models.RouteClosure
		if err := rows.Scan(&c.ID, &c.RouteID, &c.FromDate, &c.ToDate); err != nil {
			return out, fmt.Errorf("scan route closure: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
