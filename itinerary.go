// Package itinerary collects and submits travel itinerary requests.
//
// The root package wires the building blocks under pkg/ for callers that
// want a ready client and form:
//
//	client, err := itinerary.NewClient(submission.Config{BaseURL: url})
//	f := itinerary.NewForm(client)
//	f.Load(state)
//	result, err := f.Submit(ctx)
package itinerary

import (
	"context"
	"fmt"

	"github.com/goliatone/go-itinerary/internal/input"
	"github.com/goliatone/go-itinerary/pkg/contract"
	"github.com/goliatone/go-itinerary/pkg/form"
	"github.com/goliatone/go-itinerary/pkg/model"
	"github.com/goliatone/go-itinerary/pkg/submission"
)

// FormState aliases model.FormState, the raw values a user entered.
type FormState = model.FormState

// Payload aliases model.Payload, the request body sent to the service.
type Payload = model.Payload

// Confirmation aliases model.Confirmation.
type Confirmation = model.Confirmation

// Result aliases form.Result.
type Result = form.Result

// NewClient returns a submission client that checks every payload against
// the embedded service contract before sending it.
func NewClient(cfg submission.Config, options ...submission.Option) (*submission.Client, error) {
	c, err := contract.Default()
	if err != nil {
		return nil, fmt.Errorf("itinerary: load contract: %w", err)
	}
	opts := append([]submission.Option{submission.WithPayloadChecker(c)}, options...)
	return submission.New(cfg, opts...), nil
}

// NewForm exposes the form constructor from the top-level module.
func NewForm(sender form.Sender, options ...form.Option) *form.Form {
	return form.New(sender, options...)
}

// LoadFormState reads a JSON or YAML form state from a file path, an http(s)
// URL, or "-" for standard input.
func LoadFormState(ctx context.Context, location string) (FormState, error) {
	return input.Load(ctx, location)
}

// ParseFormState decodes a JSON or YAML form state.
func ParseFormState(data []byte) (FormState, error) {
	return input.Parse(data, "")
}

// Generate submits state through sender in one call. Validation failures
// are returned as validation.Errors; submission failures also fill the
// returned Result's Message.
func Generate(ctx context.Context, sender form.Sender, state FormState, options ...form.Option) (Result, error) {
	f := form.New(sender, options...)
	f.Load(state)
	return f.Submit(ctx)
}
