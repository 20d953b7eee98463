package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/services"
)

type ticketTypesRequest struct {
	RouteID      FlexID `json:"route_id" binding:"required,gt=0"`
	PickupPoint  FlexID `json:"pickup_point" binding:"gte=0"`
	DropoffPoint FlexID `json:"dropoff_point" binding:"gte=0"`
	TravelDate   string `json:"travel_date" binding:"omitempty,datetime=2006-01-02"`
}

// TicketTypesByRoute lists the priced fare rows of a route.
func (h *Handlers) TicketTypesByRoute(c *gin.Context) {
	var req ticketTypesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	date, err := h.parseOptionalDate("travel_date", req.TravelDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := h.TicketTypes.ByRoute(c.Request.Context(), services.TicketTypeQuery{
		RouteID:       req.RouteID.ID(),
		PickupCityID:  req.PickupPoint.ID(),
		DropoffCityID: req.DropoffPoint.ID(),
		Date:          date,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, "Ticket types fetched successfully", res)
}
