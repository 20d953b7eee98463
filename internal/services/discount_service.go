package services

import (
	"context"
	"time"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

type DiscountService struct {
	store DiscountStore
}

func NewDiscountService(store DiscountStore) *DiscountService {
	return &DiscountService{store: store}
}

// Active returns the discount applied to routeID on day, or nil.
func (s *DiscountService) Active(ctx context.Context, routeID domain.ID, day time.Time) (*models.RouteDiscount, error) {
	list, err := s.store.ListCovering(ctx, routeID, day)
	if err != nil {
		return nil, err
	}
	return selectActiveDiscount(list, day), nil
}

// selectActiveDiscount picks the newest (highest id) live discount whose
// range contains day.
func selectActiveDiscount(list []models.RouteDiscount, day time.Time) *models.RouteDiscount {
	var best *models.RouteDiscount
	for i := range list {
		d := list[i]
		if d.IsDeleted || !d.Value.Valid || !utils.WithinDays(day, d.FromDate, d.ToDate) {
			continue
		}
		if best == nil || d.ID > best.ID {
			best = &d
		}
	}
	return best
}
