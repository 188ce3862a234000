package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler serves reservation creation, lookup and deletion.
// Publisher may be nil when RabbitMQ is not configured; confirmed
// bookings are then simply not announced.
type ReservationHandler struct {
	Engine    *booking.Engine
	Publisher *service.QueuePublisher
}

func NewReservationHandler(e *booking.Engine, p *service.QueuePublisher) *ReservationHandler {
	return &ReservationHandler{Engine: e, Publisher: p}
}

type reserveReq struct {
	RestaurantID uint64   `json:"restaurant_id"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	AttendeeIDs  []uint64 `json:"attendee_ids"`
	GuestsCount  int      `json:"guests_count"`
}

// Reserve handles POST /v1/reserve. The host is the authenticated
// eater from the JWT, never a body field.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	hostID := middleware.EaterID(c)
	if hostID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	detail, err := h.Engine.CreateReservation(ctx, booking.CreateRequest{
		HostID:       hostID,
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		StartTime:    req.Time,
		AttendeeIDs:  req.AttendeeIDs,
		GuestsCount:  req.GuestsCount,
	})
	if err != nil {
		return respondBookingError(c, err)
	}

	if h.Publisher != nil {
		if err := h.Publisher.PublishReservationConfirmed(ctx, detail); err != nil {
			// the booking is committed; a failed announcement is log-only
			log.Printf("publish reservation.confirmed failed: %v", err)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":      "success",
		"reservation": detail,
	})
}

// Get handles GET /v1/reservations/:id. Soft-deleted reservations are
// hidden unless include_inactive=true.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	includeInactive := c.QueryParam("include_inactive") == "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Engine.GetReservation(ctx, id, includeInactive)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"reservation": detail,
	})
}

// Delete handles DELETE /v1/reservations/:id. The default is a hard
// delete; only an explicit soft_delete=true deactivates the
// reservation and keeps the row.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	softDelete := c.QueryParam("soft_delete") == "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	message, err := h.Engine.DeleteReservation(ctx, id, softDelete)
	if err != nil {
		return respondBookingError(c, err)
	}
	deletionType := "soft"
	if !softDelete {
		deletionType = "hard"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"message":       message,
		"deletion_type": deletionType,
	})
}
