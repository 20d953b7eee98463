package models

import (
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/shopspring/decimal"
)

// PricedOption is one bookable bus for a leg. Dates use DD-MM-YYYY and
// DD-MM-YYYY HH:mm; BasePrice is converted only, UpdatedBasePrice also
// carries the route discount.
type PricedOption struct {
	ScheduleID        domain.ID         `json:"schedule_id"`
	RouteID           domain.ID         `json:"route_id"`
	RouteTitle        string            `json:"route_title"`
	BusID             domain.ID         `json:"bus_id"`
	BusName           string            `json:"bus_name"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern"`
	DaysOfWeek        []string          `json:"days_of_week"`
	Direction         string            `json:"direction"`
	TravelDate        string            `json:"travel_date"`
	DepartureTime     string            `json:"departure_time"`
	ArrivalTime       string            `json:"arrival_time"`
	Duration          string            `json:"duration"`
	ExchangeRate      decimal.Decimal   `json:"exchange_rate"`
	Discount          *RouteDiscount    `json:"discount"`
	BasePrice         PriceSet          `json:"base_price"`
	UpdatedBasePrice  PriceSet          `json:"updated_base_price"`
	RouteStops        []RouteStop       `json:"route_stops"`
	PickupStop        RouteStop         `json:"pickupStop"`
	DropoffStop       RouteStop         `json:"dropoffStop"`
	TotalBookedSeats  int               `json:"total_booked_seats"`
}

// SearchResult holds both directions of a search. Empty lists are a valid,
// successful answer.
type SearchResult struct {
	Onward []PricedOption `json:"onward"`
	Return []PricedOption `json:"return"`
}

func (r SearchResult) Empty() bool {
	return len(r.Onward) == 0 && len(r.Return) == 0
}
