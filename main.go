package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/cache"
	intconfig "github.com/Abhisheklodhi2001/Austria-Express/internal/config"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	router "github.com/Abhisheklodhi2001/Austria-Express/internal/http"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/http/handlers"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/repositories"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/services"
)

func main() {
	cfg := intconfig.MustLoad()

	log := intconfig.SetupLogger(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Search.Location()
	if err != nil {
		log.Fatal("invalid search timezone", zap.Error(err))
	}

	db, err := intconfig.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer intconfig.CloseDB()

	var rateCache *cache.RateCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, rate cache misses will hit mysql", zap.Error(err))
		}
		cancel()
		rateCache = cache.NewRateCache(redisClient, cfg.Redis.RateTTL)
	}

	ticketTypeRepo := repositories.TicketTypeRepository{DB: db}
	routeRepo := repositories.RouteRepository{DB: db}

	var rates services.RateCache
	if rateCache != nil {
		rates = rateCache
	}
	currency := services.NewCurrencyService(log, repositories.CurrencyRepository{DB: db}, rates, models.CurrencyPair{
		From: cfg.Currency.From,
		To:   cfg.Currency.To,
	})
	fares := services.NewFareCalculator(currency, services.NewDiscountService(repositories.DiscountRepository{DB: db}))
	stops := services.NewStopService(repositories.RouteStopRepository{DB: db})
	ticketTypes := services.NewTicketTypeService(log, ticketTypeRepo, routeRepo, stops, fares, loc)

	h := &handlers.Handlers{
		Log: log,
		Search: services.NewSearchService(log, services.SearchDeps{
			TicketTypes: ticketTypeRepo,
			Schedules:   repositories.ScheduleRepository{DB: db},
			Routes:      routeRepo,
			Stops:       stops,
			Fares:       fares,
			Occupancy:   services.NewOccupancyService(repositories.BookingRepository{DB: db}),
		}, services.SearchOptions{
			Location:      loc,
			Workers:       cfg.Search.Workers,
			LookaheadDays: cfg.Search.LookaheadDays,
			MaxResults:    cfg.Search.MaxResults,
		}),
		TicketTypes: ticketTypes,
		Cities:      services.NewCityService(repositories.CityRepository{DB: db}, ticketTypeRepo),
		FareSheets:  services.NewFareSheetService(log, ticketTypes),
		Location:    loc,
	}

	r := router.NewRouter(*cfg, log, h)

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server started", zap.String("addr", cfg.App.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
