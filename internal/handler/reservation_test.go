package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// stubStore is a minimal in-memory booking.Store for handler tests:
// one restaurant with one table, pre-registered eaters, reservations
// held in a map.
type stubStore struct {
	eaters       map[uint64]*model.Eater
	restaurant   *model.Restaurant
	hours        *model.OperatingHours
	table        model.Table
	reservations map[uint64]*model.Reservation
	attendees    map[uint64][]uint64
	nextID       uint64
}

func newStubStore() *stubStore {
	return &stubStore{
		eaters: map[uint64]*model.Eater{
			1: {ID: 1, Name: "Eddie Tapia", Email: "eddie.tapia@example.com"},
		},
		restaurant:   &model.Restaurant{ID: 10, Name: "Lardo", AcceptsReservations: true},
		hours:        &model.OperatingHours{RestaurantID: 10, OpeningTime: "08:00", ClosingTime: "20:00"},
		table:        model.Table{ID: 20, RestaurantID: 10, Capacity: 4},
		reservations: map[uint64]*model.Reservation{},
		attendees:    map[uint64][]uint64{},
	}
}

func (s *stubStore) GetEater(_ context.Context, id uint64) (*model.Eater, error) {
	return s.eaters[id], nil
}

func (s *stubStore) RestrictionIDsForEaters(context.Context, []uint64) ([]uint64, error) {
	return []uint64{}, nil
}

func (s *stubStore) GetRestaurant(_ context.Context, id uint64) (*model.Restaurant, error) {
	if id == s.restaurant.ID {
		return s.restaurant, nil
	}
	return nil, nil
}

func (s *stubStore) GetOperatingHours(_ context.Context, id uint64) (*model.OperatingHours, error) {
	if id == s.restaurant.ID {
		return s.hours, nil
	}
	return nil, nil
}

func (s *stubStore) ListReservable(context.Context) ([]booking.Candidate, error) {
	return []booking.Candidate{{Restaurant: *s.restaurant, Hours: s.hours}}, nil
}

func (s *stubStore) EndorsementIDsForRestrictions(context.Context, []uint64) ([]uint64, error) {
	return []uint64{}, nil
}

func (s *stubStore) TablesFitting(_ context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	if restaurantID == s.restaurant.ID && s.table.Capacity >= minCapacity {
		return []model.Table{s.table}, nil
	}
	return []model.Table{}, nil
}

func (s *stubStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
	return s.reservations[id], nil
}

func (s *stubStore) ActiveByRestaurantDate(_ context.Context, restaurantID uint64, date time.Time) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if r.IsActive && r.RestaurantID == restaurantID && r.Date.Equal(date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubStore) ActiveByEaterDate(_ context.Context, eaterID uint64, date time.Time) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if r.IsActive && r.HostID == eaterID && r.Date.Equal(date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubStore) AttendeeIDs(_ context.Context, reservationID uint64) ([]uint64, error) {
	return s.attendees[reservationID], nil
}

func (s *stubStore) CreateReservation(_ context.Context, res *model.Reservation, attendeeIDs []uint64) error {
	s.nextID++
	res.ID = s.nextID
	stored := *res
	s.reservations[res.ID] = &stored
	s.attendees[res.ID] = attendeeIDs
	return nil
}

func (s *stubStore) SetReservationInactive(_ context.Context, id uint64) error {
	if r, ok := s.reservations[id]; ok {
		r.IsActive = false
	}
	return nil
}

func (s *stubStore) DeleteReservation(_ context.Context, id uint64) error {
	delete(s.reservations, id)
	delete(s.attendees, id)
	return nil
}

// bookReservation creates one reservation through the engine and
// returns its ID.
func bookReservation(t *testing.T, engine *booking.Engine) uint64 {
	t.Helper()
	detail, err := engine.CreateReservation(context.Background(), booking.CreateRequest{
		HostID:       1,
		RestaurantID: 10,
		Date:         "2026-09-10",
		StartTime:    "18:00",
	})
	require.NoError(t, err)
	return detail.ID
}

func performDelete(h *ReservationHandler, id uint64, query string) *httptest.ResponseRecorder {
	e := echo.New()
	target := "/v1/reservations/" + strconv.FormatUint(id, 10)
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(id, 10))
	_ = h.Delete(c)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDeleteDefaultsToHardDelete(t *testing.T) {
	store := newStubStore()
	engine := booking.NewEngine(store)
	h := NewReservationHandler(engine, nil)
	id := bookReservation(t, engine)

	rec := performDelete(h, id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "hard", body["deletion_type"])
	assert.Equal(t, "Reservation permanently deleted", body["message"])
	assert.NotContains(t, store.reservations, id, "row is gone without an explicit soft_delete=true")
}

func TestDeleteSoftOnlyWhenExplicitlyRequested(t *testing.T) {
	store := newStubStore()
	engine := booking.NewEngine(store)
	h := NewReservationHandler(engine, nil)

	t.Run("soft_delete=true deactivates and keeps the row", func(t *testing.T) {
		id := bookReservation(t, engine)
		rec := performDelete(h, id, "soft_delete=true")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "soft", body["deletion_type"])
		assert.Equal(t, "Reservation marked as deleted", body["message"])
		require.Contains(t, store.reservations, id)
		assert.False(t, store.reservations[id].IsActive)
	})

	t.Run("soft_delete=false deletes permanently", func(t *testing.T) {
		id := bookReservation(t, engine)
		rec := performDelete(h, id, "soft_delete=false")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "hard", decodeBody(t, rec)["deletion_type"])
		assert.NotContains(t, store.reservations, id)
	})

	t.Run("unrecognized value falls back to hard", func(t *testing.T) {
		id := bookReservation(t, engine)
		rec := performDelete(h, id, "soft_delete=yes")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "hard", decodeBody(t, rec)["deletion_type"])
		assert.NotContains(t, store.reservations, id)
	})
}

func TestDeleteUnknownReservation(t *testing.T) {
	store := newStubStore()
	h := NewReservationHandler(booking.NewEngine(store), nil)

	rec := performDelete(h, 999, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Reservation not found", decodeBody(t, rec)["error"])
}
