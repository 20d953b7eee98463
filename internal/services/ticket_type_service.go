package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// TicketTypeQuery asks for the fares of a route. Pickup and dropoff are
// optional; Date defaults to today.
type TicketTypeQuery struct {
	RouteID       domain.ID
	PickupCityID  domain.ID
	DropoffCityID domain.ID
	Date          time.Time
}

type PricedTicketType struct {
	models.TicketTypeRow
	BasePrice        models.PriceSet `json:"base_price"`
	UpdatedBasePrice models.PriceSet `json:"updated_base_price"`
}

type TicketTypeResult struct {
	Route        models.Route          `json:"route"`
	Date         string                `json:"travel_date"`
	Columns      []string              `json:"columns"`
	ExchangeRate decimal.Decimal       `json:"exchange_rate"`
	Discount     *models.RouteDiscount `json:"discount"`
	TicketTypes  []PricedTicketType    `json:"ticket_types"`
}

type TicketTypeService struct {
	log         *zap.Logger
	ticketTypes TicketTypeStore
	routes      RouteStore
	stops       *StopService
	fares       *FareCalculator
	loc         *time.Location
	now         func() time.Time
}

func NewTicketTypeService(log *zap.Logger, ticketTypes TicketTypeStore, routes RouteStore, stops *StopService, fares *FareCalculator, loc *time.Location) *TicketTypeService {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TicketTypeService{
		log:         log,
		ticketTypes: ticketTypes,
		routes:      routes,
		stops:       stops,
		fares:       fares,
		loc:         loc,
		now:         time.Now,
	}
}

// ByRoute prices every fare row of a route. Rows are converted when the
// pickup city asks for it and carry the discount active on the date.
func (s *TicketTypeService) ByRoute(ctx context.Context, q TicketTypeQuery) (TicketTypeResult, error) {
	if q.RouteID <= 0 {
		return TicketTypeResult{}, domain.ValidationError{Field: "route_id", Msg: "route_id is required"}
	}
	route, err := s.routes.GetByID(ctx, q.RouteID)
	if err != nil {
		return TicketTypeResult{}, err
	}
	if route.IsDeleted {
		return TicketTypeResult{}, domain.NotFoundError{Resource: "route"}
	}

	day := q.Date
	if day.IsZero() {
		day = s.now().In(s.loc)
	}
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, s.loc)

	pickupCity := models.City{}
	if q.PickupCityID > 0 {
		stop, err := s.stops.StopFor(ctx, q.RouteID, q.PickupCityID)
		switch {
		case err == nil:
			pickupCity = stop.City
		case domain.IsNotFound(err):
			s.log.Debug("pickup stop not on route, fares left unconverted",
				zap.Int64("route_id", int64(q.RouteID)),
				zap.Int64("pickup_point", int64(q.PickupCityID)),
			)
		default:
			return TicketTypeResult{}, err
		}
	}

	pickup, dropoff := q.PickupCityID, q.DropoffCityID
	if pickup <= 0 || dropoff <= 0 {
		pickup, dropoff = 0, 0
	}
	rows, cols, err := s.ticketTypes.ListByRoute(ctx, q.RouteID, pickup, dropoff)
	if err != nil {
		return TicketTypeResult{}, err
	}

	rate, discount, err := s.fares.Quote(ctx, q.RouteID, pickupCity, day)
	if err != nil {
		return TicketTypeResult{}, err
	}

	out := TicketTypeResult{
		Route:        route,
		Date:         utils.FormatDisplayDate(day),
		Columns:      cols,
		ExchangeRate: rate,
		Discount:     discount,
		TicketTypes:  make([]PricedTicketType, 0, len(rows)),
	}
	for _, row := range rows {
		base, updated := utils.AdjustPrices(row.Prices, rate, discount)
		out.TicketTypes = append(out.TicketTypes, PricedTicketType{
			TicketTypeRow:    row,
			BasePrice:        base,
			UpdatedBasePrice: updated,
		})
	}

	utils.LogEvent(s.log, utils.RequestIDFrom(ctx), "ticket_type", "by_route", "ticket types priced",
		zap.Int64("route_id", int64(q.RouteID)),
		zap.Int("rows", len(out.TicketTypes)),
	)
	return out, nil
}
