package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

// Read-only views of the reference and booking stores. The MySQL
// repositories satisfy them; tests use in-memory fakes.

type TicketTypeStore interface {
	FindForLeg(ctx context.Context, pickup, dropoff domain.ID, dir domain.Direction) ([]models.TicketTypeRow, error)
	ListByRoute(ctx context.Context, routeID, pickup, dropoff domain.ID) ([]models.TicketTypeRow, []string, error)
}

type PriceColumnStore interface {
	PriceColumns(ctx context.Context) ([]string, error)
}

type ScheduleStore interface {
	ListByRoutes(ctx context.Context, routeIDs []domain.ID) ([]models.BusSchedule, error)
}

type RouteStore interface {
	GetByID(ctx context.Context, id domain.ID) (models.Route, error)
	ListClosuresOn(ctx context.Context, routeIDs []domain.ID, day time.Time) ([]models.RouteClosure, error)
}

type RouteStopStore interface {
	ListByRoute(ctx context.Context, routeID domain.ID) ([]models.RouteStop, error)
	FindByRouteAndCity(ctx context.Context, routeID, cityID domain.ID) (models.RouteStop, error)
}

type DiscountStore interface {
	ListCovering(ctx context.Context, routeID domain.ID, day time.Time) ([]models.RouteDiscount, error)
}

type RateStore interface {
	FindRate(ctx context.Context, pair models.CurrencyPair) (decimal.Decimal, error)
}

type RateCache interface {
	GetRate(ctx context.Context, pair models.CurrencyPair) (decimal.Decimal, error)
	SetRate(ctx context.Context, pair models.CurrencyPair, rate decimal.Decimal) error
}

type BookingStore interface {
	CountSeated(ctx context.Context, key models.OccupancyKey) (int, error)
}

type CityStore interface {
	Search(ctx context.Context, prefix string, fromUkraine *bool, limit int) ([]models.City, error)
	Destinations(ctx context.Context, cityID domain.ID, priceColumn string) ([]models.City, error)
}
