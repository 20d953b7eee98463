package models

import (
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
)

type Route struct {
	ID        domain.ID `json:"route_id"`
	Title     string    `json:"title"`
	IsDeleted bool      `json:"is_deleted"`
}

// RouteStop is one city along a route. Times are HH:mm strings as entered by
// the administrator and are validated only when a leg is built from them.
type RouteStop struct {
	ID            domain.ID `json:"route_stop_id"`
	RouteID       domain.ID `json:"route_id"`
	City          City      `json:"stop_city"`
	StopOrder     int       `json:"stop_order"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	IsActive      bool      `json:"is_active"`
	IsDeleted     bool      `json:"is_deleted"`
}

// RouteClosure blocks a route on every day of [FromDate, ToDate].
type RouteClosure struct {
	ID       domain.ID `json:"id"`
	RouteID  domain.ID `json:"route_id"`
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
}
