package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/service"
)

// dbTimeout bounds every repository call made on behalf of a request.
// Storage is local and fast; anything slower than this is a fault.
const dbTimeout = 5 * time.Second

// getAccountID extracts the account_id from echo.Context and converts it to
// uint64. JWT numeric claims decode as float64, so several shapes are
// accepted.
func getAccountID(c echo.Context) (uint64, error) {
	v := c.Get("account_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid account_id in context")
}

// respondError maps the error taxonomy of the core onto HTTP statuses. Every
// failure the service can produce is representable here; unknown errors
// become an opaque 500 so internals never leak to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrValidation) || errors.Is(err, repository.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, service.ErrNotAdmin):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "administrator role required"})
	case errors.Is(err, repository.ErrMovieNotFound) ||
		errors.Is(err, repository.ErrScheduleNotFound) ||
		errors.Is(err, repository.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUsernameTaken) ||
		errors.Is(err, repository.ErrMovieInUse) ||
		errors.Is(err, repository.ErrScheduleInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
