package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// bookingStatus maps an engine error kind to an HTTP status code.
func bookingStatus(err error) int {
	switch booking.KindOf(err) {
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindInvalidInput:
		return http.StatusBadRequest
	case booking.KindRuleViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondBookingError writes an engine error as a JSON error body with
// the mapped status.
func respondBookingError(c echo.Context, err error) error {
	return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
}
