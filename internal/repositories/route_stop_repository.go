package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

type RouteStopRepository struct {
	DB *sql.DB
}

func (r RouteStopRepository) db() *sql.DB {
	return pickDB(r.DB)
}

const routeStopSelect = `
	SELECT s.route_stop_id, s.routeRouteId, s.stop_order,
	       COALESCE(s.departure_time, ''), COALESCE(s.arrival_time, ''),
	       s.is_active, s.is_deleted,
	       c.city_id, COALESCE(c.city_name, ''), c.from_ukraine, c.is_active, c.is_deleted
	FROM route_stops s
	JOIN city c ON c.city_id = s.stopCityCityId`

// ListByRoute returns the live stops of a route in travel order.
func (r RouteStopRepository) ListByRoute(ctx context.Context, routeID domain.ID) ([]models.RouteStop, error) {
	rows, err := r.db().QueryContext(ctx, routeStopSelect+`
	WHERE s.routeRouteId = ? AND s.is_deleted = 0
	ORDER BY s.stop_order ASC`, routeID)
	if err != nil {
		return nil, fmt.Errorf("query route stops: %w", err)
	}
	defer rows.Close()

	out := []models.RouteStop{}
	for rows.Next() {
		stop, err := scanRouteStop(rows)
		if err != nil {
			return out, err
		}
		out = append(out, stop)
	}
	return out, rows.Err()
}

// FindByRouteAndCity returns the stop a route makes in a city.
func (r RouteStopRepository) FindByRouteAndCity(ctx context.Context, routeID, cityID domain.ID) (models.RouteStop, error) {
	row := r.db().QueryRowContext(ctx, routeStopSelect+`
	WHERE s.routeRouteId = ? AND s.stopCityCityId = ? AND s.is_deleted = 0
	ORDER BY s.stop_order ASC
	LIMIT 1`, routeID, cityID)

	stop, err := scanRouteStop(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RouteStop{}, domain.NotFoundError{Resource: "route stop", Err: err}
		}
		return models.RouteStop{}, err
	}
	return stop, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRouteStop(s rowScanner) (models.RouteStop, error) {
	var stop models.RouteStop
	err := s.Scan(
		&stop.ID,
		&stop.RouteID,
		&stop.StopOrder,
		&stop.DepartureTime,
		&stop.ArrivalTime,
		&stop.IsActive,
		&stop.IsDeleted,
		&stop.City.ID,
		&stop.City.Name,
		&stop.City.FromUkraine,
		&stop.City.IsActive,
		&stop.City.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stop, err
		}
		return stop, fmt.Errorf("scan route stop: %w", err)
	}
	return stop, nil
}
