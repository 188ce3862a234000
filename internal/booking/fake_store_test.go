package booking

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// hoursFixture is a standard 08:00-20:00 schedule shared by tests.
var hoursFixture = model.OperatingHours{OpeningTime: "08:00", ClosingTime: "20:00"}

// fakeStore is an in-memory Store used to exercise the engine without
// a database. It mirrors the repository semantics the engine relies
// on: nil for missing rows, ascending table capacity, host-or-attendee
// union on the per-eater reservation query.
type fakeStore struct {
	eaters            map[uint64]*model.Eater
	eaterRestrictions map[uint64][]uint64
	restaurants       map[uint64]*model.Restaurant
	hours             map[uint64]*model.OperatingHours
	endorsements      map[uint64][]uint64 // restaurant -> endorsement IDs
	coverage          map[uint64][]uint64 // restriction -> endorsement IDs
	tables            map[uint64][]model.Table
	reservations      map[uint64]*model.Reservation
	attendees         map[uint64][]uint64
	nextID            uint64
	failCommit        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		eaters:            map[uint64]*model.Eater{},
		eaterRestrictions: map[uint64][]uint64{},
		restaurants:       map[uint64]*model.Restaurant{},
		hours:             map[uint64]*model.OperatingHours{},
		endorsements:      map[uint64][]uint64{},
		coverage:          map[uint64][]uint64{},
		tables:            map[uint64][]model.Table{},
		reservations:      map[uint64]*model.Reservation{},
		attendees:         map[uint64][]uint64{},
	}
}

func (s *fakeStore) id() uint64 {
	s.nextID++
	return s.nextID
}

// ----- builders -----

func (s *fakeStore) addEater(name string, restrictionIDs ...uint64) uint64 {
	id := s.id()
	s.eaters[id] = &model.Eater{ID: id, Name: name, Email: name + "@example.com"}
	s.eaterRestrictions[id] = restrictionIDs
	return id
}

func (s *fakeStore) addRestaurant(name, opening, closing string, capacities ...uint32) uint64 {
	id := s.id()
	s.restaurants[id] = &model.Restaurant{ID: id, Name: name, AcceptsReservations: true}
	if opening != "" {
		s.hours[id] = &model.OperatingHours{RestaurantID: id, OpeningTime: opening, ClosingTime: closing}
	}
	for _, c := range capacities {
		s.tables[id] = append(s.tables[id], model.Table{ID: s.id(), RestaurantID: id, Capacity: c})
	}
	return id
}

func (s *fakeStore) endorse(restaurantID uint64, endorsementIDs ...uint64) {
	s.endorsements[restaurantID] = append(s.endorsements[restaurantID], endorsementIDs...)
}

func (s *fakeStore) mapRestriction(restrictionID uint64, endorsementIDs ...uint64) {
	s.coverage[restrictionID] = append(s.coverage[restrictionID], endorsementIDs...)
}

// ----- EaterStore -----

func (s *fakeStore) GetEater(_ context.Context, id uint64) (*model.Eater, error) {
	return s.eaters[id], nil
}

func (s *fakeStore) RestrictionIDsForEaters(_ context.Context, eaterIDs []uint64) ([]uint64, error) {
	seen := map[uint64]struct{}{}
	out := []uint64{}
	for _, id := range eaterIDs {
		for _, r := range s.eaterRestrictions[id] {
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// ----- RestaurantStore -----

func (s *fakeStore) GetRestaurant(_ context.Context, id uint64) (*model.Restaurant, error) {
	return s.restaurants[id], nil
}

func (s *fakeStore) GetOperatingHours(_ context.Context, restaurantID uint64) (*model.OperatingHours, error) {
	return s.hours[restaurantID], nil
}

func (s *fakeStore) ListReservable(_ context.Context) ([]Candidate, error) {
	ids := make([]uint64, 0, len(s.restaurants))
	for id, r := range s.restaurants {
		if r.AcceptsReservations {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, Candidate{
			Restaurant:     *s.restaurants[id],
			Hours:          s.hours[id],
			EndorsementIDs: append([]uint64{}, s.endorsements[id]...),
		})
	}
	return out, nil
}

func (s *fakeStore) EndorsementIDsForRestrictions(_ context.Context, restrictionIDs []uint64) ([]uint64, error) {
	seen := map[uint64]struct{}{}
	out := []uint64{}
	for _, r := range restrictionIDs {
		for _, e := range s.coverage[r] {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// ----- TableStore -----

func (s *fakeStore) TablesFitting(_ context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	out := []model.Table{}
	for _, t := range s.tables[restaurantID] {
		if t.Capacity >= minCapacity {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ----- ReservationStore -----

func (s *fakeStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
	return s.reservations[id], nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (s *fakeStore) ActiveByRestaurantDate(_ context.Context, restaurantID uint64, date time.Time) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if r.IsActive && r.RestaurantID == restaurantID && sameDay(r.Date, date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) ActiveByEaterDate(_ context.Context, eaterID uint64, date time.Time) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if !r.IsActive || !sameDay(r.Date, date) {
			continue
		}
		if r.HostID == eaterID {
			out = append(out, *r)
			continue
		}
		for _, a := range s.attendees[r.ID] {
			if a == eaterID {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) AttendeeIDs(_ context.Context, reservationID uint64) ([]uint64, error) {
	return append([]uint64{}, s.attendees[reservationID]...), nil
}

func (s *fakeStore) CreateReservation(_ context.Context, res *model.Reservation, attendeeIDs []uint64) error {
	if s.failCommit {
		return ErrCommitConflict
	}
	res.ID = s.id()
	res.CreatedAt = time.Now().UTC()
	stored := *res
	s.reservations[res.ID] = &stored
	s.attendees[res.ID] = append([]uint64{}, attendeeIDs...)
	return nil
}

func (s *fakeStore) SetReservationInactive(_ context.Context, id uint64) error {
	if r, ok := s.reservations[id]; ok {
		r.IsActive = false
	}
	return nil
}

func (s *fakeStore) DeleteReservation(_ context.Context, id uint64) error {
	delete(s.reservations, id)
	delete(s.attendees, id)
	return nil
}
