package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/service"
)

// BookingHandler serves the authenticated customer surface: buying tickets
// and listing the caller's purchase history. The acting account always comes
// from the JWT, never from the request body, so one account cannot purchase
// on behalf of another.
type BookingHandler struct {
	Booking *service.BookingService
}

func NewBookingHandler(booking *service.BookingService) *BookingHandler {
	return &BookingHandler{Booking: booking}
}

type purchaseReq struct {
	ScheduleID uint64 `json:"schedule_id"`
	Quantity   uint32 `json:"quantity"`
}

// Purchase handles POST /v1/tickets.
func (h *BookingHandler) Purchase(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ScheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Booking.PurchaseTicket(ctx, accountID, req.ScheduleID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// MyTickets handles GET /v1/tickets.
func (h *BookingHandler) MyTickets(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tickets, err := h.Booking.MyTickets(ctx, accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}
