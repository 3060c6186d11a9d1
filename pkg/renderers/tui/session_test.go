package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itinerary/pkg/form"
	"github.com/goliatone/go-itinerary/pkg/model"
	"github.com/goliatone/go-itinerary/pkg/submission"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted for " + cfg.Message)
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted for " + cfg.Message)
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted for " + cfg.Message)
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) infoContaining(substr string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type stubSender struct {
	payloads []model.Payload
	errs     []error
}

func (s *stubSender) Submit(_ context.Context, payload model.Payload) (model.Confirmation, error) {
	s.payloads = append(s.payloads, payload)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return model.Confirmation{}, err
	}
	return model.Confirmation{
		TripSummary: model.TripSummary{
			Destination:     payload.Trip.Destination,
			Duration:        "5 Days",
			Travelers:       payload.Traveler.Travelers,
			ActivitiesCount: len(payload.Activities),
		},
		DownloadPath: "/files/a.pdf",
		DownloadURL:  "https://api.example.com/files/a.pdf",
	}, nil
}

func validState() model.FormState {
	activity := model.NewActivity("act_1")
	activity.Name = "Zoo"
	return model.FormState{
		Traveler: model.TravelerInput{Name: "Asha", Email: "asha@example.com", Phone: "123", Travelers: "2"},
		Trip: model.TripInput{
			Destination:   "Singapore",
			DepartureFrom: "Mumbai",
			DepartureDate: "2025-03-01",
			ArrivalDate:   "2025-03-05",
			TripType:      "leisure",
		},
		Activities: []model.ActivityInput{activity},
		Services:   model.NewServices(),
	}
}

func TestRunFillsEverySection(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			// traveler
			"Asha", "asha@example.com", "123", "2",
			// trip
			"Singapore", "Mumbai", "2025-03-01", "2025-03-05",
			// activity 1
			"Zoo", "", "1", "abc", "2h",
			// activity 2
			"Night Safari", "", "2", "1200", "3h",
			// hotel 1
			"Singapore", "2025-03-01", "2025-03-05", "4", "Raffles",
			// services
			"1500", "Visa, Transfers",
		},
		selectIdx: []int{1, 1, 2},
		confirm: []bool{
			true, false, // activities
			false,       // flights
			true, false, // hotels
			false,       // visa
		},
		textAreas: []string{"Vegetarian meals"},
	}
	sender := &stubSender{}
	session, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	result, err := session.Run(context.Background(), form.New(sender))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	if driver.inputPos != len(driver.inputs) || driver.selectPos != 3 || driver.confirmPos != 6 || driver.textPos != 1 {
		t.Fatalf("prompts not consumed as expected: %d/%d/%d/%d", driver.inputPos, driver.selectPos, driver.confirmPos, driver.textPos)
	}

	if len(sender.payloads) != 1 {
		t.Fatalf("expected one submission, got %d", len(sender.payloads))
	}
	payload := sender.payloads[0]
	if payload.Trip.TripType != model.TripTypeBusiness || payload.Trip.Nights != 4 {
		t.Fatalf("unexpected trip %+v", payload.Trip)
	}

	type row struct {
		Name     string
		Day      int
		TimeSlot model.TimeSlot
		Price    float64
	}
	var got []row
	for _, a := range payload.Activities {
		got = append(got, row{a.Name, a.Day, a.TimeSlot, a.Price})
	}
	want := []row{
		{"Zoo", 1, model.TimeSlotAfternoon, 0},
		{"Night Safari", 2, model.TimeSlotEvening, 1200},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("activities mismatch (-want +got):\n%s", diff)
	}
	if len(payload.Hotels) != 1 || payload.Hotels[0].Nights != 4 || payload.Hotels[0].RoomType != model.DefaultRoomType {
		t.Fatalf("unexpected hotels %+v", payload.Hotels)
	}
	if diff := cmp.Diff([]string{"Visa", "Transfers"}, payload.Services.ScopeOfServices); diff != "" {
		t.Fatalf("scope mismatch (-want +got):\n%s", diff)
	}
	if payload.Services.SpecialNotes != "Vegetarian meals" || payload.Services.PaymentPlan.TotalAmount != 1500 {
		t.Fatalf("unexpected services %+v", payload.Services)
	}
	if !driver.infoContaining("Itinerary ready for Singapore") {
		t.Fatalf("expected confirmation summary, got %v", driver.infoMessages)
	}
}

func TestSubmitReasksInvalidFields(t *testing.T) {
	state := validState()
	state.Traveler.Name = ""
	state.Traveler.Email = "not-an-email"

	driver := &stubDriver{inputs: []string{"asha@example.com", "Asha"}}
	sender := &stubSender{}
	f := form.New(sender)
	f.Load(state)

	session, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := session.Submit(context.Background(), f); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if diff := cmp.Diff([]string{"Email", "Full name"}, driver.prompts); diff != "" {
		t.Fatalf("re-asked prompts mismatch (-want +got):\n%s", diff)
	}
	if !driver.infoContaining("Invalid email address (userDetails.email)") {
		t.Fatalf("expected issue list, got %v", driver.infoMessages)
	}
	if len(sender.payloads) != 1 || sender.payloads[0].Traveler.Name != "Asha" {
		t.Fatalf("expected a single corrected submission, got %+v", sender.payloads)
	}
}

func TestSubmitRetriesAfterFailure(t *testing.T) {
	badDates := &submission.Error{Kind: submission.KindClientRequest, Status: 400, Message: "bad dates"}

	t.Run("resubmit", func(t *testing.T) {
		driver := &stubDriver{confirm: []bool{true}}
		sender := &stubSender{errs: []error{badDates}}
		f := form.New(sender)
		f.Load(validState())

		session, _ := New(WithPromptDriver(driver))
		result, err := session.Submit(context.Background(), f)
		if err != nil || !result.Succeeded() {
			t.Fatalf("expected success after resubmit, got %+v %v", result, err)
		}
		if !driver.infoContaining("! bad dates") {
			t.Fatalf("expected failure message, got %v", driver.infoMessages)
		}
		if len(sender.payloads) != 2 {
			t.Fatalf("expected two submissions, got %d", len(sender.payloads))
		}
	})

	t.Run("give up", func(t *testing.T) {
		driver := &stubDriver{confirm: []bool{false}}
		sender := &stubSender{errs: []error{badDates}}
		f := form.New(sender)
		f.Load(validState())

		session, _ := New(WithPromptDriver(driver))
		_, err := session.Submit(context.Background(), f)
		if !errors.Is(err, ErrGaveUp) || submission.KindOf(err) != submission.KindClientRequest {
			t.Fatalf("expected abandoned client error, got %v", err)
		}
		if f.Status() != form.StatusFailed {
			t.Fatalf("expected failed status, got %s", f.Status())
		}
	})
}

func TestFillUsesCurrentValuesAsDefaults(t *testing.T) {
	recorder := &defaultRecorder{stubDriver: stubDriver{}}
	f := form.New(nil)
	f.Load(validState())

	session, _ := New(WithPromptDriver(recorder))
	if err := session.traveler(context.Background(), f); err != nil {
		t.Fatalf("traveler: %v", err)
	}
	if diff := cmp.Diff([]string{"Asha", "asha@example.com", "123", "2"}, recorder.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got := f.State().Traveler; got.Name != "Asha" {
		t.Fatalf("accepting defaults should keep values, got %+v", got)
	}
}

// defaultRecorder answers every input with its default.
type defaultRecorder struct {
	stubDriver
	defaults []string
}

func (d *defaultRecorder) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.defaults = append(d.defaults, cfg.Default)
	return cfg.Default, nil
}

func TestPromptFor(t *testing.T) {
	cases := map[string]string{
		"userDetails.email":                          "Email",
		"tripDetails.arrivalDate":                    "Return date",
		"activities.3.activityName":                  "Activity name",
		"hotels.0.nights":                            "Nights",
		"additionalServices.paymentPlan.totalAmount": "Total amount",
		"additionalServices.visa.type":               "Visa type",
	}
	for path, label := range cases {
		p, ok := promptFor(path)
		if !ok || p.label != label {
			t.Fatalf("promptFor(%s) = %+v, %v", path, p, ok)
		}
	}
	for _, path := range []string{"activities", "activities.0", "userDetails.age", "nothing"} {
		if _, ok := promptFor(path); ok {
			t.Fatalf("expected no prompt for %s", path)
		}
	}
}
