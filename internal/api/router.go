package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hbsystem/booking-api/internal/api/handler"
	"github.com/hbsystem/booking-api/internal/api/middleware"
	"github.com/hbsystem/booking-api/internal/core/ports"
)

// Dependencies bundles everything the router needs. The store handle and the
// services are constructed by the process entry point and injected here;
// nothing in this package owns their lifecycle.
type Dependencies struct {
	AuthService         ports.AuthService
	ReservationService  ports.ReservationService
	AvailabilityService ports.AvailabilityService
	DB                  *sql.DB
	Redis               *redis.Client
	JWTSecret           string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	reservationHandler := handler.NewReservationHandler(deps.ReservationService)
	availabilityHandler := handler.NewAvailabilityHandler(deps.AvailabilityService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Reservation routes ---
	v1 := e.Group("/v1")
	v1.POST("/reservations", reservationHandler.Create, authMiddleware)
	v1.GET("/reservations/active", reservationHandler.Active, authMiddleware)
	v1.DELETE("/reservations/:id", reservationHandler.Cancel, authMiddleware)
	v1.GET("/availability", availabilityHandler.Check)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
