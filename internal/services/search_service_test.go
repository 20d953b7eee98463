package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

func oneWay(pickup, dropoff domain.ID, date time.Time) SearchRequest {
	return SearchRequest{PickupCityID: pickup, DropoffCityID: dropoff, TravelDate: date}
}

func onlyOption(t *testing.T, opts []models.PricedOption) models.PricedOption {
	t.Helper()
	if len(opts) != 1 {
		t.Fatalf("expected exactly one option, got %d", len(opts))
	}
	return opts[0]
}

func TestSearch_NoDiscountKeepsBasePrice(t *testing.T) {
	f := newSearchFixture()

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := onlyOption(t, res.Onward)

	if got := opt.BasePrice["Baseprice"].Decimal.StringFixed(2); got != "100.00" {
		t.Fatalf("base price: got %s", got)
	}
	if got := opt.UpdatedBasePrice["Baseprice"].Decimal.StringFixed(2); got != "100.00" {
		t.Fatalf("updated price: got %s", got)
	}
	if opt.UpdatedBasePrice["Child"].Valid {
		t.Fatalf("null column must pass through")
	}
	if !opt.ExchangeRate.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("non-converted pickup should use rate 1, got %s", opt.ExchangeRate)
	}
	if f.rates.calls != 0 {
		t.Fatalf("rate store should not be consulted, calls=%d", f.rates.calls)
	}
	if opt.DepartureTime != "14-03-2026 08:00" || opt.ArrivalTime != "14-03-2026 22:00" {
		t.Fatalf("unexpected times: %s -> %s", opt.DepartureTime, opt.ArrivalTime)
	}
	if opt.Duration != "14 hours 0 minutes" {
		t.Fatalf("unexpected duration: %s", opt.Duration)
	}
	if opt.PickupStop.ID != 11 || opt.DropoffStop.ID != 12 || len(opt.RouteStops) != 2 {
		t.Fatalf("unexpected stops: %+v / %+v", opt.PickupStop, opt.DropoffStop)
	}
	if opt.Direction != "onward" || opt.TravelDate != "14-03-2026" {
		t.Fatalf("unexpected leg metadata: %s %s", opt.Direction, opt.TravelDate)
	}
	if len(res.Return) != 0 {
		t.Fatalf("one-way search must not return a return leg")
	}
}

func TestSearch_DecreaseDiscount(t *testing.T) {
	f := newSearchFixture()
	f.discounts.list = []models.RouteDiscount{{
		ID:       5,
		RouteID:  1,
		FromDate: day(2026, 3, 1),
		ToDate:   day(2026, 3, 31),
		Type:     models.DiscountDecrease,
		Value:    price(10),
	}}

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := onlyOption(t, res.Onward)
	if got := opt.BasePrice["Baseprice"].Decimal.StringFixed(2); got != "100.00" {
		t.Fatalf("base price: got %s", got)
	}
	if got := opt.UpdatedBasePrice["Baseprice"].Decimal.StringFixed(2); got != "90.00" {
		t.Fatalf("updated price: got %s", got)
	}
	if opt.Discount == nil || opt.Discount.ID != 5 {
		t.Fatalf("discount not surfaced: %+v", opt.Discount)
	}
}

func TestSearch_ConvertedPickupUsesExchangeRate(t *testing.T) {
	f := newSearchFixture()
	f.ticketTypes.rows = append(f.ticketTypes.rows, models.TicketTypeRow{
		ID: 2, RouteID: 2, StartCityID: kyiv, EndCityID: vienna,
		Prices: models.PriceSet{"Baseprice": price(10)},
	})
	f.rates.rates[eurUah] = decimal.NewFromInt(40)

	res, err := f.service().Search(context.Background(), oneWay(kyiv, vienna, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := onlyOption(t, res.Onward)
	if got := opt.BasePrice["Baseprice"].Decimal.StringFixed(2); got != "400.00" {
		t.Fatalf("converted base price: got %s", got)
	}
	if opt.ScheduleID != 200 {
		t.Fatalf("unexpected schedule: %d", opt.ScheduleID)
	}
}

func TestSearch_TodayAfterDepartureIsExcluded(t *testing.T) {
	f := newSearchFixture()

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Onward) != 0 {
		t.Fatalf("departed bus must be excluded, got %d options", len(res.Onward))
	}

	f.stops.byRoute[1][0].DepartureTime = "12:01"
	res, err = f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Onward) != 1 {
		t.Fatalf("later departure today must be kept, got %d options", len(res.Onward))
	}

	f.stops.byRoute[1][0].DepartureTime = "12:00"
	res, err = f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Onward) != 0 {
		t.Fatalf("departure equal to now must be excluded")
	}
}

func TestSearch_ReturnWithoutSwappedFaresIsEmpty(t *testing.T) {
	f := newSearchFixture()
	back := day(2026, 3, 20)

	res, err := f.service().Search(context.Background(), SearchRequest{
		PickupCityID:  vienna,
		DropoffCityID: kyiv,
		TravelDate:    day(2026, 3, 14),
		ReturnDate:    &back,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Onward) != 1 {
		t.Fatalf("expected onward options, got %d", len(res.Onward))
	}
	if res.Return == nil || len(res.Return) != 0 {
		t.Fatalf("return must be an empty list, got %v", res.Return)
	}
}

func TestSearch_ReturnPricesSwappedRow(t *testing.T) {
	f := newSearchFixture()
	f.ticketTypes.rows = append(f.ticketTypes.rows, models.TicketTypeRow{
		ID: 2, RouteID: 2, StartCityID: kyiv, EndCityID: vienna,
		Prices: models.PriceSet{"Baseprice": price(3)},
	})
	f.rates.rates[eurUah] = decimal.RequireFromString("41.5")
	back := day(2026, 3, 20)

	res, err := f.service().Search(context.Background(), SearchRequest{
		PickupCityID:  vienna,
		DropoffCityID: kyiv,
		TravelDate:    day(2026, 3, 14),
		ReturnDate:    &back,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := onlyOption(t, res.Return)
	if ret.Direction != "return" || ret.ScheduleID != 200 || ret.TravelDate != "20-03-2026" {
		t.Fatalf("unexpected return option: %+v", ret)
	}
	if ret.PickupStop.City.ID != kyiv || ret.DropoffStop.City.ID != vienna {
		t.Fatalf("return leg must board in the dropoff city")
	}
	if got := ret.BasePrice["Baseprice"].Decimal.StringFixed(2); got != "124.50" {
		t.Fatalf("return base price: got %s", got)
	}
	if got := onlyOption(t, res.Onward).BasePrice["Baseprice"].Decimal.StringFixed(2); got != "100.00" {
		t.Fatalf("onward base price: got %s", got)
	}
}

func TestSearch_RecurrenceAndClosures(t *testing.T) {
	saturday := day(2026, 3, 14)

	tests := []struct {
		name    string
		mutate  func(f *searchFixture)
		wantLen int
	}{
		{
			name: "daily ignores weekday set",
			mutate: func(f *searchFixture) {
				f.schedules.list[0].DaysOfWeek = []string{"Monday"}
			},
			wantLen: 1,
		},
		{
			name: "weekly on other weekday",
			mutate: func(f *searchFixture) {
				f.schedules.list[0].RecurrencePattern = models.RecurrenceWeekly
				f.schedules.list[0].DaysOfWeek = []string{"Monday", "Friday"}
			},
			wantLen: 0,
		},
		{
			name: "custom on matching weekday",
			mutate: func(f *searchFixture) {
				f.schedules.list[0].RecurrencePattern = models.RecurrenceCustom
				f.schedules.list[0].DaysOfWeek = []string{"saturday"}
			},
			wantLen: 1,
		},
		{
			name: "closure covers date",
			mutate: func(f *searchFixture) {
				f.routes.closures = []models.RouteClosure{{ID: 1, RouteID: 1, FromDate: day(2026, 3, 14), ToDate: day(2026, 3, 14)}}
			},
			wantLen: 0,
		},
		{
			name: "closure on other route",
			mutate: func(f *searchFixture) {
				f.routes.closures = []models.RouteClosure{{ID: 1, RouteID: 2, FromDate: day(2026, 3, 1), ToDate: day(2026, 3, 31)}}
			},
			wantLen: 1,
		},
		{
			name: "inactive schedule",
			mutate: func(f *searchFixture) {
				f.schedules.list[0].IsActive = false
			},
			wantLen: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newSearchFixture()
			tc.mutate(f)
			res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, saturday))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Onward) != tc.wantLen {
				t.Fatalf("expected %d options, got %d", tc.wantLen, len(res.Onward))
			}
		})
	}
}

func TestSearch_InconsistentSchedulesAreSkipped(t *testing.T) {
	f := newSearchFixture()
	route3 := models.Route{ID: 3, Title: "Vienna - Kyiv express"}
	route4 := models.Route{ID: 4, Title: "Vienna - Kyiv night"}
	f.ticketTypes.rows = append(f.ticketTypes.rows,
		models.TicketTypeRow{ID: 3, RouteID: 3, StartCityID: vienna, EndCityID: kyiv, Prices: models.PriceSet{"Baseprice": price(120)}},
		models.TicketTypeRow{ID: 4, RouteID: 4, StartCityID: vienna, EndCityID: kyiv, Prices: models.PriceSet{"Baseprice": price(130)}},
	)
	f.schedules.list = append(f.schedules.list, dailySchedule(300, route3), dailySchedule(400, route4))
	// route 3 never stops in Kyiv, route 4 has a broken time
	f.stops.byRoute[3] = []models.RouteStop{stop(31, 3, cityVienna, 1, "06:00", "06:00"), stop(32, 3, cityGraz, 2, "09:00", "09:00")}
	f.stops.byRoute[4] = []models.RouteStop{stop(41, 4, cityVienna, 1, "6:00", "6:00"), stop(42, 4, cityKyiv, 2, "20:00", "20:00")}

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("inconsistent data must not fail the search: %v", err)
	}
	if opt := onlyOption(t, res.Onward); opt.ScheduleID != 100 {
		t.Fatalf("unexpected surviving schedule: %d", opt.ScheduleID)
	}
}

func TestSearch_StoreFailureIsFatal(t *testing.T) {
	f := newSearchFixture()
	boom := errors.New("connection refused")
	f.schedules.err = boom

	_, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}

	f = newSearchFixture()
	f.rates.err = boom
	f.ticketTypes.rows[0].StartCityID, f.ticketTypes.rows[0].EndCityID = kyiv, vienna
	f.ticketTypes.rows[0].RouteID = 2
	_, err = f.service().Search(context.Background(), oneWay(kyiv, vienna, day(2026, 3, 14)))
	if !errors.Is(err, boom) {
		t.Fatalf("expected rate store error, got %v", err)
	}
}

func TestSearch_OvernightLeg(t *testing.T) {
	f := newSearchFixture()
	f.stops.byRoute[1][0].DepartureTime = "23:30"
	f.stops.byRoute[1][1].ArrivalTime = "01:00"

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := onlyOption(t, res.Onward)
	if opt.DepartureTime != "14-03-2026 23:30" || opt.ArrivalTime != "15-03-2026 01:00" {
		t.Fatalf("unexpected times: %s -> %s", opt.DepartureTime, opt.ArrivalTime)
	}
	if opt.Duration != "1 hours 30 minutes" {
		t.Fatalf("unexpected duration: %s", opt.Duration)
	}
}

func TestSearch_BookedSeatsPerLeg(t *testing.T) {
	f := newSearchFixture()
	f.bookings.seats[1] = 7

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := onlyOption(t, res.Onward).TotalBookedSeats; got != 7 {
		t.Fatalf("expected 7 booked seats, got %d", got)
	}
	key := f.bookings.keys[0]
	if key.FromCityID != vienna || key.ToCityID != kyiv || !key.TravelDate.Equal(day(2026, 3, 14)) {
		t.Fatalf("unexpected occupancy key: %+v", key)
	}
}

func TestSearch_OptionsOrderedByDeparture(t *testing.T) {
	f := newSearchFixture()
	route5 := models.Route{ID: 5, Title: "Vienna - Kyiv early"}
	f.ticketTypes.rows = append(f.ticketTypes.rows,
		models.TicketTypeRow{ID: 5, RouteID: 5, StartCityID: vienna, EndCityID: kyiv, Prices: models.PriceSet{"Baseprice": price(90)}})
	f.schedules.list = append(f.schedules.list, dailySchedule(500, route5))
	f.stops.byRoute[5] = []models.RouteStop{stop(51, 5, cityVienna, 1, "05:00", "05:00"), stop(52, 5, cityKyiv, 2, "19:00", "19:00")}

	res, err := f.service().Search(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Onward) != 2 || res.Onward[0].ScheduleID != 500 || res.Onward[1].ScheduleID != 100 {
		t.Fatalf("unexpected order: %+v", res.Onward)
	}
}

func TestSearch_Validation(t *testing.T) {
	f := newSearchFixture()
	back := day(2026, 3, 13)

	cases := map[string]SearchRequest{
		"missing pickup":       {DropoffCityID: kyiv, TravelDate: day(2026, 3, 14)},
		"same cities":          {PickupCityID: kyiv, DropoffCityID: kyiv, TravelDate: day(2026, 3, 14)},
		"missing date":         {PickupCityID: vienna, DropoffCityID: kyiv},
		"return before onward": {PickupCityID: vienna, DropoffCityID: kyiv, TravelDate: day(2026, 3, 14), ReturnDate: &back},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := f.service().Search(context.Background(), req); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSearchUpcoming_LooksAhead(t *testing.T) {
	f := newSearchFixture()
	f.schedules.list[0].RecurrencePattern = models.RecurrenceWeekly
	f.schedules.list[0].DaysOfWeek = []string{"Monday"}

	opts, err := f.service().SearchUpcoming(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt := onlyOption(t, opts); opt.TravelDate != "16-03-2026" {
		t.Fatalf("expected the Monday bus, got %s", opt.TravelDate)
	}

	f.lookahead = 1
	opts, err = f.service().SearchUpcoming(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 0 {
		t.Fatalf("Monday is outside a one-day lookahead, got %d", len(opts))
	}
}

func TestSearchUpcoming_StopsAtMaxResults(t *testing.T) {
	f := newSearchFixture()
	f.schedules.list = append(f.schedules.list, dailySchedule(101, routeOut))

	opts, err := f.service().SearchUpcoming(context.Background(), oneWay(vienna, kyiv, day(2026, 3, 14)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].TravelDate != "14-03-2026" || opts[2].TravelDate != "15-03-2026" {
		t.Fatalf("unexpected dates: %s .. %s", opts[0].TravelDate, opts[2].TravelDate)
	}
}
