package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/iliyamo/cinema-ticketing/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Booking *handler.BookingHandler
	Admin   *handler.AdminHandler
}

// Register wires all routes onto the Echo instance.
//
//   - /healthz and the /v1 catalog reads are public; catalog reads sit
//     behind the optional Redis response cache.
//   - /v1/auth hosts register and login.
//   - ticket purchase and history require a valid access token.
//   - catalog/schedule mutations additionally require the ADMIN role; the
//     booking service re-checks the role server-side regardless.
//
// The token bucket rate limiter, when configured, applies to every route.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Public browse endpoints. Guests can inspect the catalog and the
	// schedule board before registering.
	pub := e.Group("/v1")
	pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	pub.GET("/movies", h.Catalog.ListMovies)
	pub.GET("/movies/:id", h.Catalog.GetMovie)
	pub.GET("/schedules", h.Catalog.ListSchedules)

	// Session-less auth operations.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Endpoints for any authenticated account.
	priv := e.Group("/v1")
	priv.Use(middleware.JWTAuth(cfg.JWTSecret))
	priv.GET("/me", h.Auth.Me)
	priv.POST("/tickets", h.Booking.Purchase)
	priv.GET("/tickets", h.Booking.MyTickets)

	// Administrator-only mutations.
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/movies", h.Admin.CreateMovie)
	admin.PUT("/movies/:id", h.Admin.UpdateMovie)
	admin.DELETE("/movies/:id", h.Admin.DeleteMovie)
	admin.POST("/schedules", h.Admin.CreateSchedule)
	admin.DELETE("/schedules/:id", h.Admin.DeleteSchedule)
}
