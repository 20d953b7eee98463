package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	intconfig "github.com/Abhisheklodhi2001/Austria-Express/internal/config"
	intdb "github.com/Abhisheklodhi2001/Austria-Express/internal/db"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// Tables the search reads; db-check reports the missing ones.
var requiredTables = []string{
	"ticket_type",
	"bus_schedule",
	"route",
	"route_stops",
	"route_closure",
	"route_discount",
	"currency_exchange_rate",
	"city",
	"booking",
	"booking_passenger",
}

// SetRouter stores the active gin engine for later inspection (e.g., /api/system/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fare service is running"})
}

func DBCheck(c *gin.Context) {
	db := intconfig.DB
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database is not connected"})
		return
	}
	if err := db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}

	missing := []string{}
	for _, t := range requiredTables {
		if !intdb.HasTable(c.Request.Context(), db, t) {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "schema incomplete", "missing_tables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router is not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
