// Package normalize turns validated form input into the payload posted to the
// rendering service. It derives the trip day and night counts from the two
// dates and coerces numeric text, falling back to defaults instead of failing:
// blank or unparsable prices become 0, days and traveler counts become 1.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-itinerary/pkg/model"
)

var (
	// ErrInvalidDate is returned when a trip date cannot be parsed.
	ErrInvalidDate = errors.New("normalize: invalid date")
	// ErrReturnBeforeDeparture is returned when the return date precedes the
	// departure date and reversed dates are not allowed.
	ErrReturnBeforeDeparture = errors.New("normalize: return date is before departure date")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Option configures Normalize.
type Option func(*options)

type options struct {
	allowReversed bool
}

// WithReversedDates keeps a return date earlier than the departure date and
// emits the resulting negative night count instead of failing.
func WithReversedDates() Option {
	return func(o *options) {
		o.allowReversed = true
	}
}

// Normalize builds the submission payload from state. state is not modified.
func Normalize(state model.FormState, opts ...Option) (model.Payload, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	days, nights, err := TripLength(state.Trip.DepartureDate, state.Trip.ArrivalDate)
	if err != nil {
		return model.Payload{}, err
	}
	if nights < 0 && !cfg.allowReversed {
		return model.Payload{}, fmt.Errorf("%w: %s < %s", ErrReturnBeforeDeparture, state.Trip.ArrivalDate, state.Trip.DepartureDate)
	}

	payload := model.Payload{
		Traveler: model.Traveler{
			Name:      state.Traveler.Name,
			Email:     state.Traveler.Email,
			Phone:     state.Traveler.Phone,
			Travelers: intOr(state.Traveler.Travelers, 1),
		},
		Trip: model.Trip{
			Destination:   state.Trip.Destination,
			DepartureFrom: state.Trip.DepartureFrom,
			DepartureDate: state.Trip.DepartureDate,
			ArrivalDate:   state.Trip.ArrivalDate,
			Days:          days,
			Nights:        nights,
			TripType:      model.TripType(stringOr(state.Trip.TripType, string(model.TripTypeLeisure))),
		},
		Activities: make([]model.Activity, 0, len(state.Activities)),
		Flights:    make([]model.Flight, 0, len(state.Flights)),
		Hotels:     make([]model.Hotel, 0, len(state.Hotels)),
		Services:   services(state.Services),
	}

	for _, a := range state.Activities {
		payload.Activities = append(payload.Activities, model.Activity{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Day:         intOr(a.Day, 1),
			TimeSlot:    model.TimeSlot(stringOr(a.TimeSlot, string(model.TimeSlotMorning))),
			Price:       amountOr(a.Price, 0),
			Duration:    a.Duration,
			Notes:       a.Notes,
		})
	}
	for _, f := range state.Flights {
		payload.Flights = append(payload.Flights, model.Flight{
			Date:          f.Date,
			Airline:       f.Airline,
			Route:         f.Route,
			FlightNumber:  f.FlightNumber,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Class:         stringOr(f.Class, model.DefaultFlightClass),
		})
	}
	for _, h := range state.Hotels {
		payload.Hotels = append(payload.Hotels, model.Hotel{
			City:      h.City,
			CheckIn:   h.CheckIn,
			CheckOut:  h.CheckOut,
			Nights:    intOr(h.Nights, 1),
			HotelName: h.HotelName,
			RoomType:  stringOr(h.RoomType, model.DefaultRoomType),
			Address:   h.Address,
		})
	}

	return payload, nil
}

// TripLength returns the day and night counts for a trip. Nights is the
// number of started 24h periods between the two instants; days is nights+1.
// Reversed dates yield a negative night count.
func TripLength(departure, arrival string) (days, nights int, err error) {
	from, err := ParseDate(departure)
	if err != nil {
		return 0, 0, err
	}
	to, err := ParseDate(arrival)
	if err != nil {
		return 0, 0, err
	}
	diff := int(math.Ceil(to.Sub(from).Hours() / 24))
	return diff + 1, diff, nil
}

// ParseDate accepts a calendar date (2006-01-02) or a date with time.
// Values without a zone are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

func services(in model.ServicesInput) model.Services {
	out := model.Services{
		ScopeOfServices: append([]string{}, in.ScopeOfServices...),
		SpecialNotes:    in.SpecialNotes,
		PaymentPlan: model.PaymentPlan{
			TotalAmount:  floatOr(in.PaymentPlan.TotalAmount, 0),
			Currency:     stringOr(in.PaymentPlan.Currency, model.DefaultCurrency),
			Installments: append([]string{}, in.PaymentPlan.Installments...),
		},
		Visa: model.Visa{
			Required: in.Visa.Required,
			Type:     in.Visa.Type,
			Validity: in.Visa.Validity,
		},
	}
	if date := strings.TrimSpace(in.Visa.ProcessingDate); date != "" {
		out.Visa.ProcessingDate = &date
	}
	return out
}

// floatOr parses raw as a number, returning fallback when blank, unparsable,
// or not finite.
func floatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// amountOr is floatOr for amounts that cannot be negative.
func amountOr(raw string, fallback float64) float64 {
	v := floatOr(raw, fallback)
	if v < 0 {
		return fallback
	}
	return v
}

// intOr parses raw as a positive count. Fractions are truncated; values
// below one or above math.MaxInt32, blank and unparsable input return
// fallback.
func intOr(raw string, fallback int) int {
	v := floatOr(raw, 0)
	if v < 1 || v > math.MaxInt32 {
		return fallback
	}
	return int(v)
}

func stringOr(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return raw
}
