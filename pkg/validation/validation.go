// Package validation evaluates the itinerary form rules at submission time.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-itinerary/pkg/model"
)

// Errors maps dotted field paths ("userDetails.email",
// "activities.2.activityName") to the first failing message for that field.
// A nil or empty Errors means the form may be submitted.
type Errors map[string]string

// Issue is a single field failure in display order.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error joins every message in path order so Errors can travel as an error.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e))
	for _, path := range e.Paths() {
		parts = append(parts, path+": "+e[path])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// First returns the message attached to path, if any.
func (e Errors) First(path string) string {
	if len(e) == 0 {
		return ""
	}
	return e[path]
}

// Has reports whether path failed.
func (e Errors) Has(path string) bool {
	_, ok := e[path]
	return ok
}

// Paths returns failing paths sorted lexically with numeric segments compared
// as numbers, so activities.10 sorts after activities.2.
func (e Errors) Paths() []string {
	out := make([]string, 0, len(e))
	for path := range e {
		out = append(out, path)
	}
	slices.SortFunc(out, comparePaths)
	return out
}

// Issues lists the failures in Paths order.
func (e Errors) Issues() []Issue {
	out := make([]Issue, 0, len(e))
	for _, path := range e.Paths() {
		out = append(out, Issue{Path: path, Message: e[path]})
	}
	return out
}

// Within returns the subset of errors whose path starts with prefix.
func (e Errors) Within(prefix string) Errors {
	out := Errors{}
	for path, msg := range e {
		if path == prefix || strings.HasPrefix(path, prefix+".") {
			out[path] = msg
		}
	}
	return out
}

var emailPattern = regexp.MustCompile(`^\S+@\S+$`)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Validate evaluates every field rule against state. It never fails; rule
// violations are returned as Errors keyed by field path.
func Validate(state model.FormState) Errors {
	err := validatorEngine().Struct(state)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"": err.Error()}
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		if _, exists := out[path]; exists {
			continue
		}
		out[path] = message(path, fe.Tag())
	}
	return out
}

func validatorEngine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		rules := map[string]validator.Func{
			"simpleemail": func(fl validator.FieldLevel) bool {
				return emailPattern.MatchString(fl.Field().String())
			},
			"travelers": validTravelers,
			"triptype": func(fl validator.FieldLevel) bool {
				return slices.Contains(model.TripTypes(), model.TripType(fl.Field().String()))
			},
			"timeslot": func(fl validator.FieldLevel) bool {
				return slices.Contains(model.TimeSlots(), model.TimeSlot(fl.Field().String()))
			},
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic("validation: register " + tag + ": " + err.Error())
			}
		}
		engine = v
	})
	return engine
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validTravelers accepts any non-numeric text (it is coerced later) and
// rejects numbers below one.
func validTravelers(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return true
	}
	return n >= 1
}
