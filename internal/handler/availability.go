package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// AvailabilityHandler serves the restaurant availability search.
type AvailabilityHandler struct {
	Engine      *booking.Engine
	Restaurants *repository.RestaurantRepo
}

func NewAvailabilityHandler(e *booking.Engine, r *repository.RestaurantRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: e, Restaurants: r}
}

// restaurantView is one search result with hours and endorsements
// resolved for display.
type restaurantView struct {
	ID                  uint64    `json:"id"`
	Name                string    `json:"name"`
	AverageRating       *float64  `json:"average_rating,omitempty"`
	Address             *string   `json:"address,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
	HasParking          bool      `json:"has_parking"`
	AcceptsReservations bool      `json:"accepts_reservations"`
	Hours               *hoursOut `json:"hours,omitempty"`
	Endorsements        []string  `json:"endorsements"`
}

type hoursOut struct {
	Opening string `json:"opening_time"`
	Closing string `json:"closing_time"`
}

// Search handles GET /v1/restaurants/available. Query parameters:
// time (HH:MM, required), date (YYYY-MM-DD, defaults to today),
// eater_id (repeatable), additional_guests.
func (h *AvailabilityHandler) Search(c echo.Context) error {
	req := booking.SearchRequest{
		Time: c.QueryParam("time"),
		Date: c.QueryParam("date"),
	}
	for _, raw := range c.QueryParams()["eater_id"] {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid eater_id: " + raw})
		}
		req.EaterIDs = append(req.EaterIDs, id)
	}
	if raw := c.QueryParam("additional_guests"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid additional_guests"})
		}
		req.AdditionalGuests = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	restaurants, err := h.Engine.FindAvailableRestaurants(ctx, req)
	if err != nil {
		return respondBookingError(c, err)
	}

	views := make([]restaurantView, 0, len(restaurants))
	for _, r := range restaurants {
		views = append(views, h.viewFor(ctx, r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"count":       len(views),
		"restaurants": views,
	})
}

// viewFor decorates a restaurant with hours and endorsement names.
// Lookup failures leave the optional fields empty rather than failing
// the whole search.
func (h *AvailabilityHandler) viewFor(ctx context.Context, r model.Restaurant) restaurantView {
	v := restaurantView{
		ID:                  r.ID,
		Name:                r.Name,
		AverageRating:       r.AverageRating,
		Address:             r.Address,
		Phone:               r.Phone,
		HasParking:          r.HasParking,
		AcceptsReservations: r.AcceptsReservations,
		Endorsements:        []string{},
	}
	if hours, err := h.Restaurants.GetOperatingHours(ctx, r.ID); err == nil && hours != nil {
		v.Hours = &hoursOut{Opening: hours.OpeningTime, Closing: hours.ClosingTime}
	}
	if endorsements, err := h.Restaurants.EndorsementsByRestaurant(ctx, r.ID); err == nil {
		for _, e := range endorsements {
			v.Endorsements = append(v.Endorsements, e.Name)
		}
	}
	return v
}
