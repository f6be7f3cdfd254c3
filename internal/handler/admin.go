package handler // handler package contains administrator catalog/schedule handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/service"
)

// AdminHandler bundles the mutation endpoints for the catalog and the
// schedule board. Routes carrying these handlers sit behind the ADMIN role
// middleware; the booking service independently re-checks the role.
type AdminHandler struct {
	Booking *service.BookingService
}

func NewAdminHandler(booking *service.BookingService) *AdminHandler {
	return &AdminHandler{Booking: booking}
}

type movieReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
	PosterPath  string `json:"poster_path"`
	TrailerPath string `json:"trailer_path"`
}

type scheduleReq struct {
	MovieID    uint64 `json:"movie_id"`
	Date       string `json:"date"` // "2006-01-02"
	Time       string `json:"time"` // "15:04"
	Hall       uint32 `json:"hall"`
	PriceCents uint32 `json:"price_cents"`
}

// CreateMovie handles POST /v1/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m := &repository.Movie{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
		PosterPath:  req.PosterPath,
		TrailerPath: req.TrailerPath,
	}
	if err := h.Booking.AddMovie(ctx, actorID, m); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m := &repository.Movie{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
		PosterPath:  req.PosterPath,
		TrailerPath: req.TrailerPath,
	}
	if err := h.Booking.UpdateMovie(ctx, actorID, m); err != nil {
		// The row exists and already holds these values; report it as a
		// success with a hint rather than an error.
		if errors.Is(err, repository.ErrNoChange) {
			return c.JSON(http.StatusOK, echo.Map{"movie": m, "updated": false})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": m, "updated": true})
}

// DeleteMovie handles DELETE /v1/movies/:id. Deletion is blocked while
// schedules still reference the movie.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Booking.DeleteMovie(ctx, actorID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateSchedule handles POST /v1/schedules.
func (h *AdminHandler) CreateSchedule(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s := &repository.Schedule{
		MovieID:    req.MovieID,
		Date:       strings.TrimSpace(req.Date),
		Time:       strings.TrimSpace(req.Time),
		Hall:       req.Hall,
		PriceCents: req.PriceCents,
	}
	if err := h.Booking.AddSchedule(ctx, actorID, s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// DeleteSchedule handles DELETE /v1/schedules/:id. Deletion is blocked while
// tickets still reference the schedule.
func (h *AdminHandler) DeleteSchedule(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Booking.DeleteSchedule(ctx, actorID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
