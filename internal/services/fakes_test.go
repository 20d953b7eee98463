package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type fakeTicketTypes struct {
	rows []models.TicketTypeRow
	cols []string
	err  error
}

func (f *fakeTicketTypes) FindForLeg(_ context.Context, pickup, dropoff domain.ID, dir domain.Direction) ([]models.TicketTypeRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	from, to := domain.Orient(pickup, dropoff, dir)
	out := []models.TicketTypeRow{}
	for _, r := range f.rows {
		if r.StartCityID == from && r.EndCityID == to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTicketTypes) ListByRoute(_ context.Context, routeID, pickup, dropoff domain.ID) ([]models.TicketTypeRow, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	out := []models.TicketTypeRow{}
	for _, r := range f.rows {
		if r.RouteID != routeID {
			continue
		}
		if pickup > 0 && (r.StartCityID != pickup || r.EndCityID != dropoff) {
			continue
		}
		out = append(out, r)
	}
	return out, f.cols, nil
}

func (f *fakeTicketTypes) PriceColumns(context.Context) ([]string, error) {
	return f.cols, f.err
}

type fakeSchedules struct {
	list []models.BusSchedule
	err  error
}

func (f *fakeSchedules) ListByRoutes(_ context.Context, routeIDs []domain.ID) ([]models.BusSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := map[domain.ID]bool{}
	for _, id := range routeIDs {
		want[id] = true
	}
	out := []models.BusSchedule{}
	for _, s := range f.list {
		if want[s.Route.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRoutes struct {
	routes   map[domain.ID]models.Route
	closures []models.RouteClosure
}

func (f *fakeRoutes) GetByID(_ context.Context, id domain.ID) (models.Route, error) {
	r, ok := f.routes[id]
	if !ok {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	return r, nil
}

func (f *fakeRoutes) ListClosuresOn(_ context.Context, routeIDs []domain.ID, day time.Time) ([]models.RouteClosure, error) {
	out := []models.RouteClosure{}
	for _, c := range f.closures {
		for _, id := range routeIDs {
			if c.RouteID == id && utils.WithinDays(day, c.FromDate, c.ToDate) {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type fakeStops struct {
	byRoute map[domain.ID][]models.RouteStop
}

func (f *fakeStops) ListByRoute(_ context.Context, routeID domain.ID) ([]models.RouteStop, error) {
	return f.byRoute[routeID], nil
}

func (f *fakeStops) FindByRouteAndCity(_ context.Context, routeID, cityID domain.ID) (models.RouteStop, error) {
	for _, s := range f.byRoute[routeID] {
		if s.City.ID == cityID {
			return s, nil
		}
	}
	return models.RouteStop{}, domain.NotFoundError{Resource: "route stop"}
}

type fakeDiscounts struct {
	list []models.RouteDiscount
}

func (f *fakeDiscounts) ListCovering(_ context.Context, routeID domain.ID, day time.Time) ([]models.RouteDiscount, error) {
	out := []models.RouteDiscount{}
	for _, d := range f.list {
		if d.RouteID == routeID && !d.IsDeleted && utils.WithinDays(day, d.FromDate, d.ToDate) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRates struct {
	mu    sync.Mutex
	rates map[models.CurrencyPair]decimal.Decimal
	err   error
	calls int
}

func (f *fakeRates) FindRate(_ context.Context, pair models.CurrencyPair) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	r, ok := f.rates[pair]
	if !ok {
		return decimal.Zero, domain.NotFoundError{Resource: "exchange rate"}
	}
	return r, nil
}

type fakeRateCache struct {
	mu     sync.Mutex
	data   map[models.CurrencyPair]decimal.Decimal
	getErr error
	sets   int
}

func (f *fakeRateCache) GetRate(_ context.Context, pair models.CurrencyPair) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return decimal.Zero, f.getErr
	}
	r, ok := f.data[pair]
	if !ok {
		return decimal.Zero, domain.NotFoundError{Resource: "cached exchange rate"}
	}
	return r, nil
}

func (f *fakeRateCache) SetRate(_ context.Context, pair models.CurrencyPair, rate decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = map[models.CurrencyPair]decimal.Decimal{}
	}
	f.data[pair] = rate
	f.sets++
	return nil
}

type fakeBookings struct {
	mu    sync.Mutex
	seats map[domain.ID]int
	keys  []models.OccupancyKey
}

func (f *fakeBookings) CountSeated(_ context.Context, key models.OccupancyKey) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return f.seats[key.RouteID], nil
}

type fakeCities struct {
	list        []models.City
	searched    bool
	priceColumn string
}

func (f *fakeCities) Search(_ context.Context, prefix string, _ *bool, _ int) ([]models.City, error) {
	f.searched = true
	return f.list, nil
}

func (f *fakeCities) Destinations(_ context.Context, _ domain.ID, priceColumn string) ([]models.City, error) {
	f.priceColumn = priceColumn
	return f.list, nil
}

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var eurUah = models.CurrencyPair{From: "EUR", To: "UAH"}

const (
	vienna domain.ID = 10
	kyiv   domain.ID = 20
	graz   domain.ID = 30
)

var (
	cityVienna = models.City{ID: vienna, Name: "Vienna", IsActive: true}
	cityKyiv   = models.City{ID: kyiv, Name: "Kyiv", FromUkraine: true, IsActive: true}
	cityGraz   = models.City{ID: graz, Name: "Graz", IsActive: true}
)

func stop(id domain.ID, routeID domain.ID, city models.City, order int, dep, arr string) models.RouteStop {
	return models.RouteStop{
		ID:            id,
		RouteID:       routeID,
		City:          city,
		StopOrder:     order,
		DepartureTime: dep,
		ArrivalTime:   arr,
		IsActive:      true,
	}
}

func dailySchedule(id domain.ID, route models.Route) models.BusSchedule {
	return models.BusSchedule{
		ID:                id,
		Route:             route,
		BusID:             1,
		BusName:           "Setra",
		RecurrencePattern: models.RecurrenceDaily,
		AlwaysAvailable:   true,
		IsActive:          true,
	}
}

// searchFixture is one route Vienna -> Kyiv (id 1) and one Kyiv -> Vienna
// (id 2), each with a daily schedule. The clock reads 2026-03-10 12:00 UTC.
type searchFixture struct {
	ticketTypes *fakeTicketTypes
	schedules   *fakeSchedules
	routes      *fakeRoutes
	stops       *fakeStops
	discounts   *fakeDiscounts
	rates       *fakeRates
	cache       *fakeRateCache
	bookings    *fakeBookings
	now         time.Time
	lookahead   int
	maxResults  int
}

var (
	routeOut  = models.Route{ID: 1, Title: "Vienna - Kyiv"}
	routeBack = models.Route{ID: 2, Title: "Kyiv - Vienna"}
)

func newSearchFixture() *searchFixture {
	return &searchFixture{
		ticketTypes: &fakeTicketTypes{
			cols: []string{"Baseprice", "Child"},
			rows: []models.TicketTypeRow{
				{ID: 1, RouteID: 1, StartCityID: vienna, EndCityID: kyiv, Prices: models.PriceSet{"Baseprice": price(100), "Child": {}}},
			},
		},
		schedules: &fakeSchedules{list: []models.BusSchedule{
			dailySchedule(100, routeOut),
			dailySchedule(200, routeBack),
		}},
		routes: &fakeRoutes{routes: map[domain.ID]models.Route{1: routeOut, 2: routeBack}},
		stops: &fakeStops{byRoute: map[domain.ID][]models.RouteStop{
			1: {
				stop(11, 1, cityVienna, 1, "08:00", "07:45"),
				stop(12, 1, cityKyiv, 2, "22:10", "22:00"),
			},
			2: {
				stop(21, 2, cityKyiv, 1, "09:00", "08:45"),
				stop(22, 2, cityVienna, 2, "23:10", "23:00"),
			},
		}},
		discounts:  &fakeDiscounts{},
		rates:      &fakeRates{rates: map[models.CurrencyPair]decimal.Decimal{}},
		cache:      &fakeRateCache{},
		bookings:   &fakeBookings{seats: map[domain.ID]int{}},
		now:        time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		lookahead:  2,
		maxResults: 3,
	}
}

func (f *searchFixture) fares() *FareCalculator {
	return NewFareCalculator(
		NewCurrencyService(nil, f.rates, f.cache, eurUah),
		NewDiscountService(f.discounts),
	)
}

func (f *searchFixture) service() *SearchService {
	return NewSearchService(nil, SearchDeps{
		TicketTypes: f.ticketTypes,
		Schedules:   f.schedules,
		Routes:      f.routes,
		Stops:       NewStopService(f.stops),
		Fares:       f.fares(),
		Occupancy:   NewOccupancyService(f.bookings),
	}, SearchOptions{
		Location:      time.UTC,
		Workers:       4,
		LookaheadDays: f.lookahead,
		MaxResults:    f.maxResults,
		Now:           func() time.Time { return f.now },
	})
}
