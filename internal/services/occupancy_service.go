package services

import (
	"context"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

type OccupancyService struct {
	store BookingStore
}

func NewOccupancyService(store BookingStore) *OccupancyService {
	return &OccupancyService{store: store}
}

// BookedSeats counts seated passengers of routeID on leg. Passengers without
// a seat do not count.
func (s *OccupancyService) BookedSeats(ctx context.Context, routeID domain.ID, leg domain.Leg) (int, error) {
	return s.store.CountSeated(ctx, models.OccupancyKey{
		RouteID:    routeID,
		FromCityID: leg.From(),
		ToCityID:   leg.To(),
		TravelDate: leg.Date,
	})
}
