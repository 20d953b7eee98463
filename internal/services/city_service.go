package services

import (
	"context"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

const (
	citySearchLimit        = 20
	destinationPriceColumn = "Baseprice"
)

type CityService struct {
	cities      CityStore
	ticketTypes PriceColumnStore
}

// NewCityService builds the city lookups. columns may be nil, in which case
// destinations are not narrowed to priced rows.
func NewCityService(cities CityStore, columns PriceColumnStore) *CityService {
	return &CityService{cities: cities, ticketTypes: columns}
}

// Search returns active cities whose name starts with prefix.
func (s *CityService) Search(ctx context.Context, prefix string, fromUkraine *bool) ([]models.City, error) {
	prefix = utils.NormalizeSpace(prefix)
	if prefix == "" {
		return []models.City{}, nil
	}
	return s.cities.Search(ctx, prefix, fromUkraine, citySearchLimit)
}

// Destinations lists the cities a fare exists for from cityID.
func (s *CityService) Destinations(ctx context.Context, cityID domain.ID) ([]models.City, error) {
	if cityID <= 0 {
		return nil, domain.ValidationError{Field: "city_id", Msg: "city_id is required"}
	}
	column := ""
	if s.ticketTypes != nil {
		cols, err := s.ticketTypes.PriceColumns(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cols {
			if c == destinationPriceColumn {
				column = c
				break
			}
		}
	}
	return s.cities.Destinations(ctx, cityID, column)
}
