package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/http/middleware"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/services"
)

const noBusesMessage = "No buses available for the selected date."

type busSearchRequest struct {
	PickupPoint  FlexID `json:"pickup_point" binding:"required,gt=0"`
	DropoffPoint FlexID `json:"dropoff_point" binding:"required,gt=0,nefield=PickupPoint"`
	TravelDate   string `json:"travel_date" binding:"required,datetime=2006-01-02"`
	ReturnDate   string `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
}

func (h *Handlers) toSearchRequest(req busSearchRequest) (services.SearchRequest, error) {
	travel, err := h.parseOptionalDate("travel_date", req.TravelDate)
	if err != nil {
		return services.SearchRequest{}, err
	}
	out := services.SearchRequest{
		PickupCityID:  req.PickupPoint.ID(),
		DropoffCityID: req.DropoffPoint.ID(),
		TravelDate:    travel,
	}
	back, err := h.parseOptionalDate("return_date", req.ReturnDate)
	if err != nil {
		return services.SearchRequest{}, err
	}
	if !back.IsZero() {
		out.ReturnDate = &back
	}
	return out, nil
}

// BusSearch prices the onward leg and, with return_date, the return leg.
func (h *Handlers) BusSearch(c *gin.Context) {
	var req busSearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sreq, err := h.toSearchRequest(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := h.Search.Search(c.Request.Context(), sreq)
	if err != nil {
		h.logger().Error("bus search failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		RespondDomainError(c, err)
		return
	}
	if res.Empty() {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": noBusesMessage,
			"data":    models.SearchResult{Onward: []models.PricedOption{}, Return: []models.PricedOption{}},
		})
		return
	}
	respondData(c, "Buses fetched successfully", res)
}

type upcomingSearchRequest struct {
	PickupPoint  FlexID `json:"pickup_point" binding:"required,gt=0"`
	DropoffPoint FlexID `json:"dropoff_point" binding:"required,gt=0,nefield=PickupPoint"`
	TravelDate   string `json:"travel_date" binding:"required,datetime=2006-01-02"`
}

// UpcomingSearch returns the next few buses starting at travel_date.
func (h *Handlers) UpcomingSearch(c *gin.Context) {
	var req upcomingSearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sreq, err := h.toSearchRequest(busSearchRequest{
		PickupPoint:  req.PickupPoint,
		DropoffPoint: req.DropoffPoint,
		TravelDate:   req.TravelDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	opts, err := h.Search.SearchUpcoming(c.Request.Context(), sreq)
	if err != nil {
		h.logger().Error("upcoming search failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		RespondDomainError(c, err)
		return
	}
	if len(opts) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": noBusesMessage, "data": []models.PricedOption{}})
		return
	}
	respondData(c, "Buses fetched successfully", opts)
}
