package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	return pickDB(r.DB)
}

// CountSeated counts passengers holding a seat on the exact leg. Bookings
// store travel_date as DD-MM-YYYY.
func (r BookingRepository) CountSeated(ctx context.Context, key models.OccupancyKey) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(p.id)
		FROM booking b
		JOIN booking_passenger p ON p.bookingId = b.id
		WHERE b.routeRouteId = ?
		  AND b.fromCityId = ?
		  AND b.toCityId = ?
		  AND b.travel_date = ?
		  AND b.is_deleted = 0
		  AND p.selected_seat IS NOT NULL
		  AND TRIM(p.selected_seat) <> ''`,
		key.RouteID, key.FromCityID, key.ToCityID, utils.FormatDisplayDate(key.TravelDate),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count booked seats: %w", err)
	}
	return n, nil
}
