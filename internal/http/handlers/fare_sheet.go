package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FareSheetPDF returns the fare sheet of a route (inline).
func (h *Handlers) FareSheetPDF(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	date, err := h.parseOptionalDate("date", c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdfBytes, filename, err := h.FareSheets.Generate(c.Request.Context(), id, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
