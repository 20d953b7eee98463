package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "github.com/Abhisheklodhi2001/Austria-Express/internal/db"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	return pickDB(r.DB)
}

// ListByRoutes loads every schedule of the given routes, including inactive
// and deleted ones; the availability filter decides what runs.
func (r ScheduleRepository) ListByRoutes(ctx context.Context, routeIDs []domain.ID) ([]models.BusSchedule, error) {
	if len(routeIDs) == 0 {
		return []models.BusSchedule{}, nil
	}
	marks, args := intdb.InPlaceholders(routeIDs)

	query := "SELECT s.schedule_id, s.routeRouteId, COALESCE(r.title, ''), r.is_deleted," +
		" COALESCE(s.busBusId, 0), COALESCE(b.bus_name, '')," +
		" COALESCE(s.recurrence_pattern, ''), COALESCE(s.days_of_week, '')," +
		" s.`from`, s.`to`, s.available, s.is_active, s.is_deleted" +
		" FROM bus_schedule s" +
		" JOIN route r ON r.route_id = s.routeRouteId" +
		" LEFT JOIN bus b ON b.bus_id = s.busBusId" +
		" WHERE s.routeRouteId IN (" + marks + ")" +
		" ORDER BY s.schedule_id ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bus schedules: %w", err)
	}
	defer rows.Close()

	out := []models.BusSchedule{}
	for rows.Next() {
		var (
			s        models.BusSchedule
			pattern  string
			days     string
			from, to sql.NullTime
		)
		if err := rows.Scan(
			&s.ID,
			&s.Route.ID,
			&s.Route.Title,
			&s.Route.IsDeleted,
			&s.BusID,
			&s.BusName,
			&pattern,
			&days,
			&from,
			&to,
			&s.AlwaysAvailable,
			&s.IsActive,
			&s.IsDeleted,
		); err != nil {
			return out, fmt.Errorf("scan bus schedule: %w", err)
		}
		s.RecurrencePattern = models.RecurrencePattern(utils.TrimOrEmpty(pattern))
		s.DaysOfWeek = utils.SplitList(days)
		if from.Valid {
			t := from.Time
			s.From = &t
		}
		if to.Valid {
			t := to.Time
			s.To = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
