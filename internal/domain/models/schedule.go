package models

import (
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
)

type RecurrencePattern string

const (
	RecurrenceDaily  RecurrencePattern = "Daily"
	RecurrenceWeekly RecurrencePattern = "Weekly"
	RecurrenceCustom RecurrencePattern = "Custom"
)

// BusSchedule says when a bus runs a route. AlwaysAvailable schedules ignore
// the From/To validity window.
type BusSchedule struct {
	ID                domain.ID         `json:"schedule_id"`
	Route             Route             `json:"route"`
	BusID             domain.ID         `json:"bus_id"`
	BusName           string            `json:"bus_name"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern"`
	DaysOfWeek        []string          `json:"days_of_week"`
	From              *time.Time        `json:"from"`
	To                *time.Time        `json:"to"`
	AlwaysAvailable   bool              `json:"available"`
	IsActive          bool              `json:"is_active"`
	IsDeleted         bool              `json:"is_deleted"`
}
