package fieldgroup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-itinerary/internal/ident"
	"github.com/goliatone/go-itinerary/pkg/model"
)

// Group names one of the repeatable collections. Values match the JSON keys
// used in dotted field paths ("activities.0.price").
type Group string

const (
	Activities Group = "activities"
	Flights    Group = "flights"
	Hotels     Group = "hotels"
)

// Groups lists every known group.
func Groups() []Group {
	return []Group{Activities, Flights, Hotels}
}

var (
	// ErrLastActivity is returned when removing the only remaining activity.
	ErrLastActivity = errors.New("fieldgroup: at least one activity is required")
	// ErrOutOfRange is returned for positions outside the collection.
	ErrOutOfRange = errors.New("fieldgroup: position out of range")
	// ErrUnknownGroup is returned for group names the store does not hold.
	ErrUnknownGroup = errors.New("fieldgroup: unknown group")
	// ErrUnknownField is returned when a record has no field with that name.
	ErrUnknownField = errors.New("fieldgroup: unknown field")
	// ErrReadOnlyField is returned when updating a generated field.
	ErrReadOnlyField = errors.New("fieldgroup: field is read-only")
)

// IDSource hands out activity identities.
type IDSource interface {
	NextActivityID() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDSource overrides the activity identity generator.
func WithIDSource(src IDSource) Option {
	return func(s *Store) {
		if src != nil {
			s.ids = src
		}
	}
}

// Store holds the three field groups. It is not safe for concurrent use;
// pkg/form serializes access.
type Store struct {
	ids        IDSource
	activities []model.ActivityInput
	flights    []model.FlightInput
	hotels     []model.HotelInput
}

// New returns a store seeded the way an empty form starts: one default
// activity, no flights, no hotels.
func New(options ...Option) *Store {
	s := &Store{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.ids == nil {
		s.ids = ident.Default()
	}
	s.Reset()
	return s
}

// Reset discards every row and re-seeds the default activity.
func (s *Store) Reset() {
	s.activities = []model.ActivityInput{model.NewActivity(s.ids.NextActivityID())}
	s.flights = nil
	s.hotels = nil
}

// Load replaces the collections with rows from state. Activities without an
// identity, or with one already used, receive a fresh identity. An empty
// activity list is replaced by a single default row.
func (s *Store) Load(state model.FormState) {
	seen := make(map[string]struct{}, len(state.Activities))
	s.activities = make([]model.ActivityInput, 0, max(1, len(state.Activities)))
	for _, row := range state.Activities {
		if _, dup := seen[row.ID]; row.ID == "" || dup {
			row.ID = s.ids.NextActivityID()
		}
		seen[row.ID] = struct{}{}
		s.activities = append(s.activities, row)
	}
	if len(s.activities) == 0 {
		s.activities = append(s.activities, model.NewActivity(s.ids.NextActivityID()))
	}
	s.flights = append([]model.FlightInput(nil), state.Flights...)
	s.hotels = append([]model.HotelInput(nil), state.Hotels...)
}

// Append adds a record at the end of group, applying the group defaults and
// then the provided initial values (keyed by JSON field name). It returns the
// position of the new record.
func (s *Store) Append(group Group, initial map[string]string) (int, error) {
	switch group {
	case Activities:
		row := model.NewActivity(s.ids.NextActivityID())
		for field, value := range initial {
			if field == "activityId" {
				continue
			}
			if err := setActivityField(&row, field, value); err != nil {
				return -1, err
			}
		}
		s.activities = append(s.activities, row)
		return len(s.activities) - 1, nil
	case Flights:
		row := model.NewFlight()
		for field, value := range initial {
			if err := setFlightField(&row, field, value); err != nil {
				return -1, err
			}
		}
		s.flights = append(s.flights, row)
		return len(s.flights) - 1, nil
	case Hotels:
		row := model.NewHotel()
		for field, value := range initial {
			if err := setHotelField(&row, field, value); err != nil {
				return -1, err
			}
		}
		s.hotels = append(s.hotels, row)
		return len(s.hotels) - 1, nil
	default:
		return -1, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
}

// Remove deletes the record at position, shifting later records up. The last
// remaining activity cannot be removed.
func (s *Store) Remove(group Group, position int) error {
	if err := s.checkPosition(group, position); err != nil {
		return err
	}
	switch group {
	case Activities:
		if len(s.activities) == 1 {
			return ErrLastActivity
		}
		s.activities = slices.Delete(s.activities, position, position+1)
	case Flights:
		s.flights = slices.Delete(s.flights, position, position+1)
	case Hotels:
		s.hotels = slices.Delete(s.hotels, position, position+1)
	}
	return nil
}

// Update replaces a single field of the record at position.
func (s *Store) Update(group Group, position int, field, value string) error {
	if err := s.checkPosition(group, position); err != nil {
		return err
	}
	switch group {
	case Activities:
		return setActivityField(&s.activities[position], field, value)
	case Flights:
		return setFlightField(&s.flights[position], field, value)
	default:
		return setHotelField(&s.hotels[position], field, value)
	}
}

// Len reports the number of records in group (0 for unknown groups).
func (s *Store) Len(group Group) int {
	switch group {
	case Activities:
		return len(s.activities)
	case Flights:
		return len(s.flights)
	case Hotels:
		return len(s.hotels)
	default:
		return 0
	}
}

// Activities returns a copy of the activity rows.
func (s *Store) Activities() []model.ActivityInput {
	return append([]model.ActivityInput(nil), s.activities...)
}

// Flights returns a copy of the flight rows.
func (s *Store) Flights() []model.FlightInput {
	return append([]model.FlightInput(nil), s.flights...)
}

// Hotels returns a copy of the hotel rows.
func (s *Store) Hotels() []model.HotelInput {
	return append([]model.HotelInput(nil), s.hotels...)
}

// Fill copies the three collections into state.
func (s *Store) Fill(state *model.FormState) {
	if state == nil {
		return
	}
	state.Activities = s.Activities()
	state.Flights = s.Flights()
	state.Hotels = s.Hotels()
}

// Snapshot returns a FormState holding copies of the three collections.
func (s *Store) Snapshot() model.FormState {
	var state model.FormState
	s.Fill(&state)
	return state
}

func (s *Store) checkPosition(group Group, position int) error {
	var size int
	switch group {
	case Activities, Flights, Hotels:
		size = s.Len(group)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	if position < 0 || position >= size {
		return fmt.Errorf("%w: %s[%d] (size %d)", ErrOutOfRange, group, position, size)
	}
	return nil
}
