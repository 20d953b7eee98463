package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// SearchDeps are the collaborators of SearchService.
type SearchDeps struct {
	TicketTypes TicketTypeStore
	Schedules   ScheduleStore
	Routes      RouteStore
	Stops       *StopService
	Fares       *FareCalculator
	Occupancy   *OccupancyService
}

type SearchOptions struct {
	Location      *time.Location
	Workers       int
	LookaheadDays int
	MaxResults    int
	Now           func() time.Time
}

// SearchRequest is a validated search. ReturnDate is nil for one-way trips.
type SearchRequest struct {
	PickupCityID  domain.ID
	DropoffCityID domain.ID
	TravelDate    time.Time
	ReturnDate    *time.Time
}

type SearchService struct {
	log    *zap.Logger
	deps   SearchDeps
	opts   SearchOptions
	filter AvailabilityFilter
}

func NewSearchService(log *zap.Logger, deps SearchDeps, opts SearchOptions) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.LookaheadDays < 0 {
		opts.LookaheadDays = 0
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SearchService{log: log, deps: deps, opts: opts}
}

// Validate checks a request before any lookup runs.
func (s *SearchService) Validate(req SearchRequest) error {
	if req.PickupCityID <= 0 {
		return domain.ValidationError{Field: "pickup_point", Msg: "pickup_point is required"}
	}
	if req.DropoffCityID <= 0 {
		return domain.ValidationError{Field: "dropoff_point", Msg: "dropoff_point is required"}
	}
	if req.PickupCityID == req.DropoffCityID {
		return domain.ValidationError{Field: "dropoff_point", Msg: "pickup and dropoff must differ"}
	}
	if req.TravelDate.IsZero() {
		return domain.ValidationError{Field: "travel_date", Msg: "travel_date is required"}
	}
	if req.ReturnDate != nil && s.day(*req.ReturnDate).Before(s.day(req.TravelDate)) {
		return domain.ValidationError{Field: "return_date", Msg: "return_date must not be before travel_date"}
	}
	return nil
}

// Search prices the onward leg and, when a return date is given, the return
// leg. The legs are independent; either may come back empty.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (models.SearchResult, error) {
	if err := s.Validate(req); err != nil {
		return models.SearchResult{}, err
	}
	now := s.opts.Now().In(s.opts.Location)
	utils.LogEvent(s.log, utils.RequestIDFrom(ctx), "search", "bus_search", "search started",
		zap.Int64("pickup_point", int64(req.PickupCityID)),
		zap.Int64("dropoff_point", int64(req.DropoffCityID)),
		zap.String("travel_date", utils.FormatDate(req.TravelDate)),
		zap.Bool("round_trip", req.ReturnDate != nil),
	)

	result := models.SearchResult{
		Onward: []models.PricedOption{},
		Return: []models.PricedOption{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts, err := s.searchLeg(gctx, domain.Leg{
			PickupCityID:  req.PickupCityID,
			DropoffCityID: req.DropoffCityID,
			Date:          s.day(req.TravelDate),
			Direction:     domain.DirectionOnward,
		}, now)
		result.Onward = opts
		return err
	})
	if req.ReturnDate != nil {
		returnDate := s.day(*req.ReturnDate)
		g.Go(func() error {
			opts, err := s.searchLeg(gctx, domain.Leg{
				PickupCityID:  req.PickupCityID,
				DropoffCityID: req.DropoffCityID,
				Date:          returnDate,
				Direction:     domain.DirectionReturn,
			}, now)
			result.Return = opts
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return models.SearchResult{}, err
	}
	return result, nil
}

// SearchUpcoming searches the onward leg on the travel date and the following
// lookahead days, stopping once MaxResults options are found.
func (s *SearchService) SearchUpcoming(ctx context.Context, req SearchRequest) ([]models.PricedOption, error) {
	req.ReturnDate = nil
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	now := s.opts.Now().In(s.opts.Location)
	first := s.day(req.TravelDate)

	out := []models.PricedOption{}
	for offset := 0; offset <= s.opts.LookaheadDays && len(out) < s.opts.MaxResults; offset++ {
		opts, err := s.searchLeg(ctx, domain.Leg{
			PickupCityID:  req.PickupCityID,
			DropoffCityID: req.DropoffCityID,
			Date:          first.AddDate(0, 0, offset),
			Direction:     domain.DirectionOnward,
		}, now)
		if err != nil {
			return nil, err
		}
		out = append(out, opts...)
	}
	if len(out) > s.opts.MaxResults {
		out = out[:s.opts.MaxResults]
	}
	return out, nil
}

type legCandidate struct {
	schedule models.BusSchedule
	prices   models.PriceSet
}

type legResult struct {
	option    models.PricedOption
	departure time.Time
}

func (s *SearchService) searchLeg(ctx context.Context, leg domain.Leg, now time.Time) ([]models.PricedOption, error) {
	const op = "search.leg"
	log := s.log.With(
		zap.String("op", op),
		zap.String("request_id", utils.RequestIDFrom(ctx)),
		zap.String("direction", leg.Direction.String()),
		zap.String("travel_date", utils.FormatDate(leg.Date)),
	)

	rows, err := s.deps.TicketTypes.FindForLeg(ctx, leg.PickupCityID, leg.DropoffCityID, leg.Direction)
	if err != nil {
		log.Error("ticket type lookup failed", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		log.Debug("no priced routes for leg")
		return []models.PricedOption{}, nil
	}

	pricesByRoute := map[domain.ID]models.PriceSet{}
	routeIDs := []domain.ID{}
	for _, row := range rows {
		if _, seen := pricesByRoute[row.RouteID]; seen {
			continue
		}
		pricesByRoute[row.RouteID] = row.Prices
		routeIDs = append(routeIDs, row.RouteID)
	}

	var (
		schedules []models.BusSchedule
		closures  []models.RouteClosure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = s.deps.Schedules.ListByRoutes(gctx, routeIDs)
		return err
	})
	g.Go(func() error {
		var err error
		closures, err = s.deps.Routes.ListClosuresOn(gctx, routeIDs, leg.Date)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("schedule lookup failed", zap.Error(err))
		return nil, err
	}

	candidates := []legCandidate{}
	for _, sch := range schedules {
		if !s.filter.RunsOn(sch, leg.Date, closures) {
			continue
		}
		candidates = append(candidates, legCandidate{schedule: sch, prices: pricesByRoute[sch.Route.ID]})
	}

	results := make([]*legResult, len(candidates))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			res, err := s.priceCandidate(gctx, leg, c, now)
			if err != nil {
				if domain.IsDataInconsistency(err) {
					log.Warn("schedule skipped",
						zap.Int64("schedule_id", int64(c.schedule.ID)),
						zap.Int64("route_id", int64(c.schedule.Route.ID)),
						zap.String("reason", err.Error()),
					)
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("pricing failed", zap.Error(err))
		return nil, err
	}

	found := make([]*legResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			found = append(found, r)
		}
	}
	sort.SliceStable(found, func(a, b int) bool {
		if !found[a].departure.Equal(found[b].departure) {
			return found[a].departure.Before(found[b].departure)
		}
		return found[a].option.ScheduleID < found[b].option.ScheduleID
	})

	out := make([]models.PricedOption, 0, len(found))
	for _, r := range found {
		out = append(out, r.option)
	}
	log.Debug("leg priced", zap.Int("candidates", len(candidates)), zap.Int("options", len(out)))
	return out, nil
}

// priceCandidate returns nil, nil when the bus has already left.
func (s *SearchService) priceCandidate(ctx context.Context, leg domain.Leg, c legCandidate, now time.Time) (*legResult, error) {
	routeID := c.schedule.Route.ID

	stops, err := s.deps.Stops.ResolveLeg(ctx, routeID, leg)
	if err != nil {
		return nil, err
	}
	if !s.filter.DepartsAfter(leg.Date, stops.Departure, now) {
		return nil, nil
	}

	var (
		fare  Fare
		seats int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fare, err = s.deps.Fares.Price(gctx, routeID, stops.Pickup.City, leg.Date, c.prices)
		return err
	})
	g.Go(func() error {
		var err error
		seats, err = s.deps.Occupancy.BookedSeats(gctx, routeID, leg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &legResult{
		departure: stops.Departure,
		option: models.PricedOption{
			ScheduleID:        c.schedule.ID,
			RouteID:           routeID,
			RouteTitle:        c.schedule.Route.Title,
			BusID:             c.schedule.BusID,
			BusName:           c.schedule.BusName,
			RecurrencePattern: c.schedule.RecurrencePattern,
			DaysOfWeek:        c.schedule.DaysOfWeek,
			Direction:         leg.Direction.String(),
			TravelDate:        utils.FormatDisplayDate(leg.Date),
			DepartureTime:     utils.FormatDisplayDateTime(stops.Departure),
			ArrivalTime:       utils.FormatDisplayDateTime(stops.Arrival),
			Duration:          utils.FormatDuration(stops.Duration()),
			ExchangeRate:      fare.Rate,
			Discount:          fare.Discount,
			BasePrice:         fare.Base,
			UpdatedBasePrice:  fare.Updated,
			RouteStops:        stops.All,
			PickupStop:        stops.Pickup,
			DropoffStop:       stops.Dropoff,
			TotalBookedSeats:  seats,
		},
	}, nil
}

// day pins t's calendar day to midnight in the search timezone.
func (s *SearchService) day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.opts.Location)
}
