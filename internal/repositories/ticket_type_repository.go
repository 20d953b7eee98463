package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "github.com/Abhisheklodhi2001/Austria-Express/internal/db"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

const ticketTypeTable = "ticket_type"

// Every other column of ticket_type is a price column.
var ticketTypeMetaColumns = []string{
	"ticket_type_id",
	"is_active",
	"is_deleted",
	"created_at",
	"updated_at",
	"routeRouteId",
	"startPointCityId",
	"endPointCityId",
}

type TicketTypeRepository struct {
	DB *sql.DB
}

func (r TicketTypeRepository) db() *sql.DB {
	return pickDB(r.DB)
}

// PriceColumns lists the price columns currently defined on ticket_type.
func (r TicketTypeRepository) PriceColumns(ctx context.Context) ([]string, error) {
	return intdb.ListColumns(ctx, r.db(), ticketTypeTable, ticketTypeMetaColumns...)
}

// FindForLeg returns the active price rows for a city pair. A return leg
// looks the pair up the other way round.
func (r TicketTypeRepository) FindForLeg(ctx context.Context, pickup, dropoff domain.ID, dir domain.Direction) ([]models.TicketTypeRow, error) {
	start, end := domain.Orient(pickup, dropoff, dir)

	cols, err := r.PriceColumns(ctx)
	if err != nil {
		return nil, err
	}

	query := ticketTypeSelect(cols) + `
		WHERE t.startPointCityId = ? AND t.endPointCityId = ?
		  AND t.is_active = 1 AND t.is_deleted = 0
		ORDER BY t.ticket_type_id ASC`

	rows, err := r.db().QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query ticket types for leg: %w", err)
	}
	defer rows.Close()

	return scanTicketTypes(rows, cols)
}

// ListByRoute returns the non-deleted price rows of a route, narrowed to one
// pair when both cities are given, plus the price column names.
func (r TicketTypeRepository) ListByRoute(ctx context.Context, routeID, pickup, dropoff domain.ID) ([]models.TicketTypeRow, []string, error) {
	cols, err := r.PriceColumns(ctx)
	if err != nil {
		return nil, nil, err
	}

	where := []string{"t.routeRouteId = ?", "t.is_deleted = 0"}
	args := []any{routeID}
	if pickup > 0 && dropoff > 0 {
		where = append(where, "t.startPointCityId = ?", "t.endPointCityId = ?")
		args = append(args, pickup, dropoff)
	}

	query := ticketTypeSelect(cols) + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY t.startPointCityId ASC, t.endPointCityId ASC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query ticket types by route: %w", err)
	}
	defer rows.Close()

	out, err := scanTicketTypes(rows, cols)
	return out, cols, err
}

func ticketTypeSelect(cols []string) string {
	var b strings.Builder
	b.WriteString(`
		SELECT t.ticket_type_id, t.routeRouteId, t.startPointCityId, t.endPointCityId,
		       COALESCE(sc.city_name, ''), COALESCE(ec.city_name, '')`)
	for _, c := range cols {
		b.WriteString(", t.")
		b.WriteString(intdb.QuoteIdent(c))
	}
	b.WriteString(`
		FROM ticket_type t
		LEFT JOIN city sc ON sc.city_id = t.startPointCityId
		LEFT JOIN city ec ON ec.city_id = t.endPointCityId`)
	return b.String()
}

func scanTicketTypes(rows *sql.Rows, cols []string) ([]models.TicketTypeRow, error) {
	out := []models.TicketTypeRow{}
	for rows.Next() {
		var row models.TicketTypeRow
		cells := make([]sql.NullString, len(cols))
		dest := []any{&row.ID, &row.RouteID, &row.StartCityID, &row.EndCityID, &row.StartCityName, &row.EndCityName}
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return out, fmt.Errorf("scan ticket type: %w", err)
		}
		row.Prices = make(models.PriceSet, len(cols))
		for i, c := range cols {
			row.Prices[c] = utils.ParsePrice(cells[i].String)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
