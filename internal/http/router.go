package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "github.com/Abhisheklodhi2001/Austria-Express/internal/config"
	h "github.com/Abhisheklodhi2001/Austria-Express/internal/http/handlers"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/http/middleware"
)

func NewRouter(cfg intconfig.Config, log *zap.Logger, handlers *h.Handlers) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.App.GinMode != "" {
		gin.SetMode(cfg.App.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.CORS(cfg.CORS.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/system/routes", h.Routes)

		// Search
		search := api.Group("/bus-search")
		search.POST("", handlers.BusSearch)
		search.POST("/upcoming", handlers.UpcomingSearch)

		// Fares
		api.POST("/ticket-types/by-route", handlers.TicketTypesByRoute)
		api.GET("/bus-routes/:id/fare-sheet", handlers.FareSheetPDF)

		// Cities
		cities := api.Group("/cities")
		cities.GET("/search", handlers.SearchCities)
		cities.GET("/:id/destinations", handlers.Destinations)
	}

	h.SetRouter(r)
	return r
}
