package models

import (
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
)

// OccupancyKey identifies the bookings that share seats on one leg.
type OccupancyKey struct {
	RouteID    domain.ID
	FromCityID domain.ID
	ToCityID   domain.ID
	TravelDate time.Time
}
