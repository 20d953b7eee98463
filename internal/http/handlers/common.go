package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/http/middleware"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/services"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// Handlers serves the public fare and search endpoints.
type Handlers struct {
	Log         *zap.Logger
	Search      *services.SearchService
	TicketTypes *services.TicketTypeService
	Cities      *services.CityService
	FareSheets  *services.FareSheetService
	Location    *time.Location
}

func (h *Handlers) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

func (h *Handlers) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"success":    false,
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func respondData(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// FlexID accepts an id sent either as a JSON number or as a numeric string.
// null and "" decode to 0.
type FlexID int64

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*id = FlexID(n)
	return nil
}

func (id FlexID) ID() domain.ID {
	return domain.ID(id)
}

// parseIDParam reads a positive id from the path.
func parseIDParam(c *gin.Context, name string) (domain.ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.ValidationError{Field: name, Msg: "invalid " + name, Err: err}
	}
	return domain.ID(n), nil
}

// parseOptionalDate parses YYYY-MM-DD; blank gives the zero time.
func (h *Handlers) parseOptionalDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(raw, h.location())
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Msg: field + " must be YYYY-MM-DD", Err: err}
	}
	return t, nil
}
