package fieldgroup_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itinerary/pkg/fieldgroup"
	"github.com/goliatone/go-itinerary/pkg/model"
)

type counterIDs struct{ n int }

func (c *counterIDs) NextActivityID() string {
	c.n++
	return fmt.Sprintf("act_%d", c.n)
}

func newStore() *fieldgroup.Store {
	return fieldgroup.New(fieldgroup.WithIDSource(&counterIDs{}))
}

func TestNewSeedsSingleActivity(t *testing.T) {
	store := newStore()

	want := []model.ActivityInput{model.NewActivity("act_1")}
	if diff := cmp.Diff(want, store.Activities()); diff != "" {
		t.Fatalf("activities mismatch (-want +got):\n%s", diff)
	}
	if store.Len(fieldgroup.Flights) != 0 || store.Len(fieldgroup.Hotels) != 0 {
		t.Fatalf("expected empty flights and hotels")
	}
}

func TestRemoveLastActivityRejected(t *testing.T) {
	store := newStore()

	err := store.Remove(fieldgroup.Activities, 0)
	if !errors.Is(err, fieldgroup.ErrLastActivity) {
		t.Fatalf("expected ErrLastActivity, got %v", err)
	}
	if got := store.Len(fieldgroup.Activities); got != 1 {
		t.Fatalf("expected 1 activity after rejected removal, got %d", got)
	}
}

func TestAppendRemovePreservesOrderAndIdentity(t *testing.T) {
	store := newStore()
	for i := 1; i <= 4; i++ {
		if _, err := store.Append(fieldgroup.Activities, map[string]string{
			"activityName": fmt.Sprintf("activity %d", i),
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	// rows: seed, 1, 2, 3, 4
	if err := store.Remove(fieldgroup.Activities, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}

	rows := store.Activities()
	var names []string
	ids := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
		if _, dup := ids[row.ID]; dup {
			t.Fatalf("duplicate identity %q", row.ID)
		}
		ids[row.ID] = struct{}{}
	}

	wantNames := []string{"", "activity 1", "activity 3", "activity 4"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if rows[2].ID != "act_4" {
		t.Fatalf("expected identity to follow the row, got %q", rows[2].ID)
	}
}

func TestFlightsAndHotelsCanBeEmptied(t *testing.T) {
	store := newStore()
	for _, group := range []fieldgroup.Group{fieldgroup.Flights, fieldgroup.Hotels} {
		if _, err := store.Append(group, nil); err != nil {
			t.Fatalf("append %s: %v", group, err)
		}
		if err := store.Remove(group, 0); err != nil {
			t.Fatalf("remove %s: %v", group, err)
		}
		if got := store.Len(group); got != 0 {
			t.Fatalf("%s: expected empty, got %d", group, got)
		}
	}
}

func TestAppendAppliesGroupDefaults(t *testing.T) {
	store := newStore()

	if _, err := store.Append(fieldgroup.Flights, map[string]string{"airline": "Vistara"}); err != nil {
		t.Fatalf("append flight: %v", err)
	}
	if _, err := store.Append(fieldgroup.Hotels, nil); err != nil {
		t.Fatalf("append hotel: %v", err)
	}

	wantFlights := []model.FlightInput{{Airline: "Vistara", Class: model.DefaultFlightClass}}
	if diff := cmp.Diff(wantFlights, store.Flights()); diff != "" {
		t.Fatalf("flights mismatch (-want +got):\n%s", diff)
	}
	wantHotels := []model.HotelInput{{Nights: "1", RoomType: model.DefaultRoomType}}
	if diff := cmp.Diff(wantHotels, store.Hotels()); diff != "" {
		t.Fatalf("hotels mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateTouchesSingleField(t *testing.T) {
	store := newStore()
	if _, err := store.Append(fieldgroup.Activities, map[string]string{"activityName": "Museum"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.Update(fieldgroup.Activities, 1, "price", "150"); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows := store.Activities()
	want := model.NewActivity("act_2")
	want.Name = "Museum"
	want.Price = "150"
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.NewActivity("act_1"), rows[0]); diff != "" {
		t.Fatalf("other row changed (-want +got):\n%s", diff)
	}
}

func TestUpdateErrors(t *testing.T) {
	store := newStore()

	cases := []struct {
		name  string
		group fieldgroup.Group
		pos   int
		field string
		want  error
	}{
		{name: "out of range", group: fieldgroup.Activities, pos: 3, field: "notes", want: fieldgroup.ErrOutOfRange},
		{name: "empty group", group: fieldgroup.Hotels, pos: 0, field: "city", want: fieldgroup.ErrOutOfRange},
		{name: "unknown field", group: fieldgroup.Activities, pos: 0, field: "colour", want: fieldgroup.ErrUnknownField},
		{name: "read-only identity", group: fieldgroup.Activities, pos: 0, field: "activityId", want: fieldgroup.ErrReadOnlyField},
		{name: "unknown group", group: fieldgroup.Group("cars"), pos: 0, field: "make", want: fieldgroup.ErrUnknownGroup},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Update(tc.group, tc.pos, tc.field, "x")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadAssignsMissingAndDuplicateIdentities(t *testing.T) {
	store := newStore()

	store.Load(model.FormState{
		Activities: []model.ActivityInput{
			{ID: "act_keep", Name: "a"},
			{ID: "act_keep", Name: "b"},
			{Name: "c"},
		},
		Hotels: []model.HotelInput{{City: "Goa"}},
	})

	var ids []string
	for _, row := range store.Activities() {
		ids = append(ids, row.ID)
	}
	want := []string{"act_keep", "act_2", "act_3"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if store.Len(fieldgroup.Hotels) != 1 || store.Len(fieldgroup.Flights) != 0 {
		t.Fatalf("unexpected group sizes after load")
	}

	store.Load(model.FormState{})
	if got := store.Len(fieldgroup.Activities); got != 1 {
		t.Fatalf("expected default activity after loading empty state, got %d", got)
	}
}
