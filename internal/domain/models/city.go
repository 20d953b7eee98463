package models

import "github.com/Abhisheklodhi2001/Austria-Express/internal/domain"

// City is a bus stop location. FromUkraine marks cities whose fares are
// shown in the converted currency.
type City struct {
	ID          domain.ID `json:"city_id"`
	Name        string    `json:"city_name"`
	FromUkraine bool      `json:"from_ukraine"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
}
