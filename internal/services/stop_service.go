package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type StopService struct {
	store RouteStopStore
}

func NewStopService(store RouteStopStore) *StopService {
	return &StopService{store: store}
}

// LegStops is a leg placed on a route: its boarding and alighting stops and
// the resulting departure and arrival instants.
type LegStops struct {
	All       []models.RouteStop
	Pickup    models.RouteStop
	Dropoff   models.RouteStop
	Departure time.Time
	Arrival   time.Time
}

func (l LegStops) Duration() time.Duration {
	return l.Arrival.Sub(l.Departure)
}

// StopFor returns the stop routeID makes in cityID.
func (s *StopService) StopFor(ctx context.Context, routeID, cityID domain.ID) (models.RouteStop, error) {
	return s.store.FindByRouteAndCity(ctx, routeID, cityID)
}

// AllStops returns the stops of routeID ordered by stop_order.
func (s *StopService) AllStops(ctx context.Context, routeID domain.ID) ([]models.RouteStop, error) {
	return s.store.ListByRoute(ctx, routeID)
}

// ResolveLeg finds the stops of leg on routeID and computes its times.
// A missing stop or a malformed time is reported as ErrStopMissing or
// ErrInvalidStopTime.
func (s *StopService) ResolveLeg(ctx context.Context, routeID domain.ID, leg domain.Leg) (LegStops, error) {
	stops, err := s.AllStops(ctx, routeID)
	if err != nil {
		return LegStops{}, err
	}

	out := LegStops{All: stops}
	pickup, ok := findStop(stops, leg.From())
	if !ok {
		return LegStops{}, fmt.Errorf("route %d city %d: %w", routeID, leg.From(), domain.ErrStopMissing)
	}
	dropoff, ok := findStop(stops, leg.To())
	if !ok {
		return LegStops{}, fmt.Errorf("route %d city %d: %w", routeID, leg.To(), domain.ErrStopMissing)
	}
	out.Pickup, out.Dropoff = pickup, dropoff

	out.Departure, out.Arrival, err = utils.LegTimes(leg.Date, pickup.DepartureTime, dropoff.ArrivalTime)
	if err != nil {
		return LegStops{}, fmt.Errorf("route %d: %v: %w", routeID, err, domain.ErrInvalidStopTime)
	}
	return out, nil
}

func findStop(stops []models.RouteStop, cityID domain.ID) (models.RouteStop, bool) {
	for _, st := range stops {
		if st.City.ID == cityID && st.IsActive && !st.IsDeleted {
			return st, true
		}
	}
	return models.RouteStop{}, false
}
