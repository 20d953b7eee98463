package services

import (
	"strings"
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// AvailabilityFilter decides whether a schedule runs on a date.
type AvailabilityFilter struct{}

// RunsOn checks liveness, the validity window, recurrence and closures.
// closures may hold any route; only the schedule's own route is consulted.
func (AvailabilityFilter) RunsOn(s models.BusSchedule, day time.Time, closures []models.RouteClosure) bool {
	if s.Route.IsDeleted || !s.IsActive || s.IsDeleted {
		return false
	}
	if !s.AlwaysAvailable {
		if s.From == nil || s.To == nil || !utils.WithinDays(day, *s.From, *s.To) {
			return false
		}
	}
	if !runsOnWeekday(s, day) {
		return false
	}
	for _, c := range closures {
		if c.RouteID == s.Route.ID && utils.WithinDays(day, c.FromDate, c.ToDate) {
			return false
		}
	}
	return true
}

// DepartsAfter rejects a departure on now's calendar day that is not strictly
// later than now. Other days always pass.
func (AvailabilityFilter) DepartsAfter(day, departure, now time.Time) bool {
	if !utils.SameDay(day, now) {
		return true
	}
	return departure.After(now)
}

// IsAvailable combines RunsOn and DepartsAfter for a known departure.
func (f AvailabilityFilter) IsAvailable(s models.BusSchedule, day time.Time, closures []models.RouteClosure, departure, now time.Time) bool {
	return f.RunsOn(s, day, closures) && f.DepartsAfter(day, departure, now)
}

func runsOnWeekday(s models.BusSchedule, day time.Time) bool {
	switch models.RecurrencePattern(strings.TrimSpace(string(s.RecurrencePattern))) {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekly, models.RecurrenceCustom:
		return utils.ContainsFold(s.DaysOfWeek, day.Weekday().String())
	default:
		return false
	}
}
