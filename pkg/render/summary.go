package render

import (
	"io"

	"github.com/goliatone/go-itinerary/pkg/model"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

// Confirmation renders the trip summary and download link of a generated
// itinerary.
func (e *Engine) Confirmation(conf model.Confirmation, out ...io.Writer) (string, error) {
	return e.Render("confirmation", conf, out...)
}

// Review renders the payload that would be sent.
func (e *Engine) Review(payload model.Payload, out ...io.Writer) (string, error) {
	return e.Render("review", map[string]any{
		"payload":  payload,
		"currency": payload.Services.PaymentPlan.Currency,
	}, out...)
}

// Issues renders validation failures in path order. Empty errors render
// nothing.
func (e *Engine) Issues(errs validation.Errors, out ...io.Writer) (string, error) {
	if len(errs) == 0 {
		return "", nil
	}
	return e.Render("issues", map[string]any{"issues": errs.Issues()}, out...)
}
