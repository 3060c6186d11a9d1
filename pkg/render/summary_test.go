package render_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-itinerary/pkg/model"
	"github.com/goliatone/go-itinerary/pkg/render"
	"github.com/goliatone/go-itinerary/pkg/testsupport"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

func engine(t *testing.T) *render.Engine {
	t.Helper()
	e, err := render.Default()
	if err != nil {
		t.Fatalf("default engine: %v", err)
	}
	return e
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConfirmation(t *testing.T) {
	conf := model.Confirmation{
		TripSummary:  model.TripSummary{Destination: "Singapore", Duration: "5 Days", Travelers: 2, ActivitiesCount: 1},
		DownloadPath: "/files/a.pdf",
		DownloadURL:  "https://api.example.com/files/a.pdf",
	}

	out, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return engine(t).Confirmation(conf, w)
	})
	if written != out {
		t.Fatalf("writer and result differ")
	}
	assertContains(t, out,
		"Itinerary ready for Singapore",
		"Duration:   5 Days",
		"Travelers:  2\n",
		"Activities: 1\n",
		"Download:   https://api.example.com/files/a.pdf",
	)
}

func TestReview(t *testing.T) {
	payload := model.Payload{
		Traveler: model.Traveler{Name: "Asha & Ravi", Email: "asha@example.com", Phone: "123", Travelers: 2},
		Trip: model.Trip{
			Destination: "Singapore", DepartureFrom: "Mumbai",
			DepartureDate: "2025-03-01", ArrivalDate: "2025-03-05",
			Days: 5, Nights: 4, TripType: model.TripTypeLeisure,
		},
		Activities: []model.Activity{{ID: "act_1", Name: "Zoo", Day: 1, TimeSlot: model.TimeSlotMorning, Price: 0}},
		Flights:    []model.Flight{},
		Hotels:     []model.Hotel{{City: "Singapore", Nights: 4, HotelName: "Raffles", RoomType: "Standard"}},
		Services: model.Services{
			ScopeOfServices: []string{},
			PaymentPlan:     model.PaymentPlan{TotalAmount: 1500.5, Currency: "SGD", Installments: []string{}},
		},
	}

	out, err := engine(t).Review(payload)
	if err != nil {
		t.Fatalf("render review: %v", err)
	}
	assertContains(t, out,
		"Trip to Singapore from Mumbai (leisure)",
		"5 days, 4 nights",
		"Asha & Ravi <asha@example.com>",
		"Day 1, Morning: Zoo [SGD 0.00]",
		"Raffles, Singapore: 4 night(s), Standard",
		"Total: SGD 1500.50",
	)
	if strings.Contains(out, "Flights:") {
		t.Fatalf("empty flights should be omitted:\n%s", out)
	}
}

func TestIssues(t *testing.T) {
	out, err := engine(t).Issues(validation.Errors{
		"userDetails.name":          "Name is required",
		"activities.0.activityName": "Activity name is required",
	})
	if err != nil {
		t.Fatalf("render issues: %v", err)
	}
	first := strings.Index(out, "Activity name is required (activities.0.activityName)")
	second := strings.Index(out, "Name is required (userDetails.name)")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("unexpected issues output:\n%s", out)
	}

	empty, err := engine(t).Issues(nil)
	if err != nil || empty != "" {
		t.Fatalf("expected empty output, got %q %v", empty, err)
	}
}

func TestCustomTemplatesAndGlobals(t *testing.T) {
	files := fstest.MapFS{
		"confirmation.tpl": {Data: []byte(`{{ brand }}: {{ destination }}`)},
	}
	e, err := render.NewEngine(render.WithTemplates(files), render.WithGlobals(map[string]any{"brand": "Vigovia"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := e.Confirmation(model.Confirmation{TripSummary: model.TripSummary{Destination: "Bali"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Vigovia: Bali" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := e.Render("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
