package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/service"
)

// CatalogHandler serves the public, read-only catalog surface: the movie
// list, the movie detail view with its showtimes, and the full schedule
// board. No authentication is required so guests can browse before
// registering.
type CatalogHandler struct {
	Booking *service.BookingService
}

func NewCatalogHandler(booking *service.BookingService) *CatalogHandler {
	return &CatalogHandler{Booking: booking}
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movies, err := h.Booking.BrowseCatalog(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// GetMovie handles GET /v1/movies/:id and returns the movie together with
// its schedules.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	detail, err := h.Booking.ViewMovieDetail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListSchedules handles GET /v1/schedules.
func (h *CatalogHandler) ListSchedules(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	schedules, err := h.Booking.ListSchedules(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"schedules": schedules})
}
