package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hbsystem/booking-api/internal/api"
	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/core/service"
	"github.com/hbsystem/booking-api/internal/infrastructure/config"
	redisdb "github.com/hbsystem/booking-api/internal/infrastructure/db/redis"
	"github.com/hbsystem/booking-api/internal/infrastructure/db/sqlite"
	"github.com/hbsystem/booking-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("fatal error")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "booking-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "booking-api",
	})

	store, err := sqlite.Open(sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		MaxConns:    cfg.SQLite.MaxConns,
	}, log)
	if err != nil {
		return err
	}
	defer store.Close()

	rooms := sqlite.NewRoomRepository(store)
	if cfg.Env == "development" {
		if err := rooms.SeedReferenceData(ctx, devHotels, devRooms); err != nil {
			return err
		}
	}

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		// The cache is an optimization; run without it rather than refusing to start.
		log.Warn().Err(err).Msg("redis unavailable, availability cache disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var cache service.AvailabilityCache
	if rdb != nil {
		cache = redisdb.NewAvailabilityCache(rdb, cfg.Redis.CacheTTL)
	}

	users := sqlite.NewUserRepository(store)
	ledger := sqlite.NewBookingRepository(store, log)

	deps := api.Dependencies{
		AuthService:         service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, log),
		ReservationService:  service.NewReservationService(ledger, rooms, cfg.MaxStayNights, log),
		AvailabilityService: service.NewAvailabilityService(rooms, cache, log),
		DB:                  store.DB(),
		Redis:               rdb,
		JWTSecret:           cfg.JWTSecret,
	}

	e := api.NewRouter(deps)
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stopProcess()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// stopProcess asks the process to exit through the same signal path as an
// operator-issued interrupt.
func stopProcess() {
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
}

// Development-only reference data so a fresh instance is immediately usable.
var devHotels = []domain.Hotel{
	{ID: 1, Name: "Grand Plaza"},
	{ID: 2, Name: "Riverside Inn"},
}

var devRooms = []domain.Room{
	{HotelID: 1, Category: "standard", RoomNumber: "101", PriceCents: 9999},
	{HotelID: 1, Category: "standard", RoomNumber: "102", PriceCents: 9999},
	{HotelID: 1, Category: "deluxe", RoomNumber: "201", PriceCents: 17950},
	{HotelID: 1, Category: "suite", RoomNumber: "301", PriceCents: 32900},
	{HotelID: 2, Category: "standard", RoomNumber: "11", PriceCents: 7500},
	{HotelID: 2, Category: "deluxe", RoomNumber: "21", PriceCents: 14000},
}
