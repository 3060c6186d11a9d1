package input

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itinerary/pkg/model"
)

const yamlDoc = `
userDetails:
  name: Asha
  email: asha@example.com
  phone: "123"
  numberOfTravelers: 2
tripDetails:
  destination: Singapore
  departureFrom: Mumbai
  departureDate: "2025-03-01"
  arrivalDate: "2025-03-05"
activities:
  - activityName: Zoo
    day: 1
    price: 25.5
additionalServices:
  visa:
    required: true
`

const jsonDoc = `{"userDetails":{"name":"Asha","numberOfTravelers":"2"},"activities":[{"activityName":"Zoo","day":"1","price":"25.5"}]}`

func TestParse(t *testing.T) {
	state, err := Parse([]byte(yamlDoc), "inline.yaml")
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if state.Traveler.Travelers != "2" || state.Trip.DepartureDate != "2025-03-01" || !state.Services.Visa.Required {
		t.Fatalf("unexpected state %+v", state)
	}
	want := []model.ActivityInput{{Name: "Zoo", Day: "1", Price: "25.5"}}
	if diff := cmp.Diff(want, state.Activities); diff != "" {
		t.Fatalf("activities mismatch (-want +got):\n%s", diff)
	}

	fromJSON, err := Parse([]byte(jsonDoc), "inline.json")
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff(want, fromJSON.Activities); diff != "" {
		t.Fatalf("json activities mismatch (-want +got):\n%s", diff)
	}

	if _, err := Parse([]byte("  \n"), "blank"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := Parse([]byte("userDetails: [unclosed"), "broken"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadSources(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/form.yaml" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, yamlDoc)
	}))
	defer srv.Close()

	cases := map[string]struct {
		location string
		options  []Option
	}{
		"file":  {location: path},
		"fs":    {location: "forms/a.yaml", options: []Option{WithFS(fstest.MapFS{"forms/a.yaml": {Data: []byte(yamlDoc)}})}},
		"stdin": {location: Stdin, options: []Option{WithStdin(strings.NewReader(yamlDoc))}},
		"http":  {location: srv.URL + "/form.yaml", options: []Option{WithHTTPClient(srv.Client())}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			state, err := Load(ctx, tc.location, tc.options...)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if state.Traveler.Name != "Asha" {
				t.Fatalf("unexpected state %+v", state.Traveler)
			}
		})
	}

	if _, err := Load(ctx, srv.URL+"/missing.yaml"); err == nil {
		t.Fatalf("expected error for missing remote document")
	}
	if _, err := Load(ctx, filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := Load(ctx, " "); err == nil {
		t.Fatalf("expected error for blank location")
	}
}
