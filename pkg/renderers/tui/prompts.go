package tui

import (
	"strings"

	"github.com/goliatone/go-itinerary/pkg/fieldgroup"
	"github.com/goliatone/go-itinerary/pkg/model"
)

// prompt describes how one form field is asked for. key is the field path
// relative to its section or row.
type prompt struct {
	key       string
	label     string
	help      string
	options   []string
	multiline bool
}

var travelerPrompts = []prompt{
	{key: "name", label: "Full name", help: "Enter your full name"},
	{key: "email", label: "Email", help: "your@email.com"},
	{key: "phone", label: "Phone number", help: "+91 9999999999"},
	{key: "numberOfTravelers", label: "Number of travelers"},
}

var tripPrompts = []prompt{
	{key: "destination", label: "Destination", help: "e.g., Singapore"},
	{key: "departureFrom", label: "Departure from", help: "e.g., Delhi"},
	{key: "departureDate", label: "Departure date", help: "YYYY-MM-DD"},
	{key: "arrivalDate", label: "Return date", help: "YYYY-MM-DD"},
	{key: "tripType", label: "Trip type", options: enumOptions(model.TripTypes())},
}

var activityPrompts = []prompt{
	{key: "activityName", label: "Activity name", help: "e.g., Marina Bay Sands Sky Park"},
	{key: "description", label: "Description", help: "Brief description of the activity"},
	{key: "day", label: "Day"},
	{key: "timeSlot", label: "Time slot", options: enumOptions(model.TimeSlots())},
	{key: "price", label: "Price"},
	{key: "duration", label: "Duration", help: "e.g., 2-3 hours"},
}

var flightPrompts = []prompt{
	{key: "date", label: "Date", help: "YYYY-MM-DD"},
	{key: "airline", label: "Airline", help: "e.g., Air India"},
	{key: "route", label: "Route", help: "From Delhi (DEL) To Singapore (SIN)"},
	{key: "flightNumber", label: "Flight number", help: "e.g., AI 345"},
}

var hotelPrompts = []prompt{
	{key: "city", label: "City", help: "e.g., Singapore"},
	{key: "checkIn", label: "Check in", help: "YYYY-MM-DD"},
	{key: "checkOut", label: "Check out", help: "YYYY-MM-DD"},
	{key: "nights", label: "Nights"},
	{key: "hotelName", label: "Hotel name", help: "e.g., Super Townhouse Oak"},
}

var servicePrompts = []prompt{
	{key: "paymentPlan.totalAmount", label: "Total amount", help: "Enter total package cost"},
	{key: "scopeOfServices", label: "Scope of services", help: "Comma separated"},
	{key: "specialNotes", label: "Special notes", help: "Any special requirements or notes", multiline: true},
}

var visaPrompts = []prompt{
	{key: "visa.type", label: "Visa type"},
	{key: "visa.validity", label: "Visa validity"},
	{key: "visa.processingDate", label: "Visa processing date", help: "YYYY-MM-DD"},
}

func enumOptions[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// promptFor finds the prompt that edits a full field path such as
// "userDetails.email" or "activities.2.activityName".
func promptFor(path string) (prompt, bool) {
	root, rest, ok := strings.Cut(path, ".")
	if !ok {
		return prompt{}, false
	}

	var candidates []prompt
	switch root {
	case "userDetails":
		candidates = travelerPrompts
	case "tripDetails":
		candidates = tripPrompts
	case "additionalServices":
		candidates = append(append([]prompt(nil), servicePrompts...), visaPrompts...)
	case string(fieldgroup.Activities), string(fieldgroup.Flights), string(fieldgroup.Hotels):
		_, field, ok := strings.Cut(rest, ".")
		if !ok {
			return prompt{}, false
		}
		rest = field
		candidates = rowPrompts(fieldgroup.Group(root))
	}

	for _, p := range candidates {
		if p.key == rest {
			return p, true
		}
	}
	return prompt{}, false
}

func rowPrompts(group fieldgroup.Group) []prompt {
	switch group {
	case fieldgroup.Activities:
		return activityPrompts
	case fieldgroup.Flights:
		return flightPrompts
	case fieldgroup.Hotels:
		return hotelPrompts
	default:
		return nil
	}
}

func rowNoun(group fieldgroup.Group) string {
	switch group {
	case fieldgroup.Activities:
		return "activity"
	case fieldgroup.Flights:
		return "flight"
	default:
		return "hotel"
	}
}
