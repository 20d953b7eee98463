package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
)

// SearchCities autocompletes city names; from_ukraine narrows the result.
func (h *Handlers) SearchCities(c *gin.Context) {
	var fromUkraine *bool
	if raw := strings.TrimSpace(c.Query("from_ukraine")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "from_ukraine", Msg: "from_ukraine must be a boolean", Err: err})
			return
		}
		fromUkraine = &v
	}

	cities, err := h.Cities.Search(c.Request.Context(), c.Query("city_name"), fromUkraine)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, "Cities fetched successfully", cities)
}

func (h *Handlers) Destinations(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cities, err := h.Cities.Destinations(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, "Destinations fetched successfully", cities)
}
