package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-itinerary/pkg/fieldgroup"
)

var (
	// ErrUnknownPath is returned for field paths the form does not hold.
	ErrUnknownPath = errors.New("form: unknown field path")
	// ErrInvalidValue is returned when a value cannot be stored at a path.
	ErrInvalidValue = errors.New("form: invalid value")
)

// SetValue writes value at a dotted field path such as "userDetails.name",
// "activities.0.price" or "additionalServices.paymentPlan.totalAmount".
// List paths (scopeOfServices, installments) take comma-separated text.
func (f *Form) SetValue(path, value string) error {
	segments := strings.Split(strings.TrimSpace(path), ".")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch segments[0] {
	case "userDetails":
		return f.setTraveler(path, segments[1:], value)
	case "tripDetails":
		return f.setTrip(path, segments[1:], value)
	case "additionalServices":
		return f.setServices(path, segments[1:], value)
	case string(fieldgroup.Activities), string(fieldgroup.Flights), string(fieldgroup.Hotels):
		if len(segments) != 3 {
			return fmt.Errorf("%w: %q", ErrUnknownPath, path)
		}
		position, err := strconv.Atoi(segments[1])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownPath, path)
		}
		return f.store.Update(fieldgroup.Group(segments[0]), position, segments[2], value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
}

// Value returns the text stored at a dotted field path. Lists are joined
// with ", " and booleans print as true or false.
func (f *Form) Value(path string) (string, bool) {
	raw, err := json.Marshal(f.State())
	if err != nil {
		return "", false
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return "", false
	}

	value, ok := lookup(tree, strings.TrimSpace(path))
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

func lookup(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// SetList replaces a list value such as "additionalServices.scopeOfServices".
func (f *Form) SetList(path string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := cleanList(values)
	switch strings.TrimSpace(path) {
	case "additionalServices.scopeOfServices":
		f.services.ScopeOfServices = list
	case "additionalServices.paymentPlan.installments":
		f.services.PaymentPlan.Installments = list
	default:
		return fmt.Errorf("%w: %q is not a list", ErrUnknownPath, path)
	}
	return nil
}

func (f *Form) setTraveler(path string, rest []string, value string) error {
	if len(rest) != 1 {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	t := &f.traveler
	switch rest[0] {
	case "name":
		t.Name = value
	case "email":
		t.Email = value
	case "phone":
		t.Phone = value
	case "numberOfTravelers":
		t.Travelers = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	return nil
}

func (f *Form) setTrip(path string, rest []string, value string) error {
	if len(rest) != 1 {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	t := &f.trip
	switch rest[0] {
	case "destination":
		t.Destination = value
	case "departureFrom":
		t.DepartureFrom = value
	case "departureDate":
		t.DepartureDate = value
	case "arrivalDate":
		t.ArrivalDate = value
	case "tripType":
		t.TripType = value
	case "numberOfDays", "numberOfNights":
		return fmt.Errorf("%w: %q is computed from the trip dates", ErrInvalidValue, path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	return nil
}

func (f *Form) setServices(path string, rest []string, value string) error {
	s := &f.services
	switch strings.Join(rest, ".") {
	case "scopeOfServices":
		s.ScopeOfServices = splitList(value)
	case "specialNotes":
		s.SpecialNotes = value
	case "paymentPlan.totalAmount":
		s.PaymentPlan.TotalAmount = value
	case "paymentPlan.currency":
		s.PaymentPlan.Currency = value
	case "paymentPlan.installments":
		s.PaymentPlan.Installments = splitList(value)
	case "visa.required":
		required, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %q expects true or false: %v", ErrInvalidValue, path, err)
		}
		s.Visa.Required = required
	case "visa.type":
		s.Visa.Type = value
	case "visa.validity":
		s.Visa.Validity = value
	case "visa.processingDate":
		s.Visa.ProcessingDate = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	return nil
}

func splitList(value string) []string {
	return cleanList(strings.Split(value, ","))
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
