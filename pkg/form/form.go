// Package form is the itinerary form controller. It owns the scalar inputs
// and the field groups, and drives a submission through validation,
// normalization and the submission client:
//
//	Idle -> Submitting -> Succeeded | Failed
//
// A validation failure sends no request and leaves the status unchanged. A
// finished submission, successful or not, leaves every value in place so the
// user can edit and submit again.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-itinerary/pkg/fieldgroup"
	"github.com/goliatone/go-itinerary/pkg/model"
	"github.com/goliatone/go-itinerary/pkg/normalize"
	"github.com/goliatone/go-itinerary/pkg/submission"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

// Status is the submission state of a Form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

var (
	// ErrInFlight is returned when Submit is called while another submission
	// is still running.
	ErrInFlight = errors.New("form: submission already in progress")
	// ErrNoSender is returned by Submit when the form was built without a
	// Sender.
	ErrNoSender = errors.New("form: no sender configured")
)

// Sender delivers a payload. *submission.Client satisfies it.
type Sender interface {
	Submit(ctx context.Context, payload model.Payload) (model.Confirmation, error)
}

// Result is the outcome of the last finished submission.
type Result struct {
	Confirmation *model.Confirmation
	// Message is the user-facing failure text; empty on success.
	Message string
	Err     error
}

// Succeeded reports whether the result carries a confirmation.
func (r Result) Succeeded() bool {
	return r.Confirmation != nil
}

// Option configures a Form.
type Option func(*Form)

// WithIDSource overrides the activity identity generator.
func WithIDSource(src fieldgroup.IDSource) Option {
	return func(f *Form) {
		f.storeOptions = append(f.storeOptions, fieldgroup.WithIDSource(src))
	}
}

// WithNormalizeOptions forwards options to the payload normalizer.
func WithNormalizeOptions(opts ...normalize.Option) Option {
	return func(f *Form) {
		f.normalizeOptions = append(f.normalizeOptions, opts...)
	}
}

// WithLogger records state transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form holds one session of user input.
type Form struct {
	mu       sync.Mutex
	inflight *semaphore.Weighted
	sender   Sender
	logger   *zap.Logger

	storeOptions     []fieldgroup.Option
	normalizeOptions []normalize.Option

	store    *fieldgroup.Store
	traveler model.TravelerInput
	trip     model.TripInput
	services model.ServicesInput

	status Status
	errors validation.Errors
	result Result
}

// New returns an empty form that submits through sender.
func New(sender Sender, options ...Option) *Form {
	f := &Form{
		inflight: semaphore.NewWeighted(1),
		sender:   sender,
		logger:   zap.NewNop(),
		status:   StatusIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.store = fieldgroup.New(f.storeOptions...)
	f.resetScalars()
	return f
}

func (f *Form) resetScalars() {
	f.traveler = model.NewTraveler()
	f.trip = model.NewTrip()
	f.services = model.NewServices()
}

// Reset restores the initial empty form and clears errors and results.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetScalars()
	f.store.Reset()
	f.status = StatusIdle
	f.errors = nil
	f.result = Result{}
}

// Load replaces every value with state. Activities are re-keyed when their
// identities are missing or repeated.
func (f *Form) Load(state model.FormState) {
	state = state.Clone()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.traveler = state.Traveler
	f.trip = state.Trip
	f.services = state.Services
	f.store.Load(state)
	f.errors = nil
}

// State returns a copy of the current values.
func (f *Form) State() model.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Form) stateLocked() model.FormState {
	state := f.store.Snapshot()
	state.Traveler = f.traveler
	state.Trip = f.trip
	state.Services = f.services
	return state.Clone()
}

// Append adds a record to group and returns its position.
func (f *Form) Append(group fieldgroup.Group, initial map[string]string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Append(group, initial)
}

// Remove deletes the record at position in group.
func (f *Form) Remove(group fieldgroup.Group, position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Remove(group, position)
}

// Len reports the number of records in group.
func (f *Form) Len(group fieldgroup.Group) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Len(group)
}

// Status reports the submission state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Errors returns the validation errors of the last Validate or Submit.
func (f *Form) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneErrors(f.errors)
}

// Result returns the outcome of the last finished submission.
func (f *Form) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Validate checks the current values and records the errors.
func (f *Form) Validate() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = validation.Validate(f.stateLocked())
	return cloneErrors(f.errors)
}

// Payload validates and normalizes the current values without sending them.
// Validation failures are returned as validation.Errors.
func (f *Form) Payload() (model.Payload, error) {
	errs := f.Validate()
	if len(errs) > 0 {
		return model.Payload{}, errs
	}
	return normalize.Normalize(f.State(), f.normalizeOptions...)
}

// Submit validates, normalizes and sends the current values. Validation
// failures return validation.Errors without a request and without changing
// the status. Every other failure lands the form in StatusFailed and is
// also returned.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	if !f.inflight.TryAcquire(1) {
		return Result{}, ErrInFlight
	}
	defer f.inflight.Release(1)

	f.mu.Lock()
	state := f.stateLocked()
	f.errors = validation.Validate(state)
	if len(f.errors) > 0 {
		errs := cloneErrors(f.errors)
		f.mu.Unlock()
		f.logger.Debug("submission blocked by validation", zap.Strings("paths", errs.Paths()))
		return Result{}, errs
	}
	f.status = StatusSubmitting
	f.result = Result{}
	f.mu.Unlock()

	conf, err := f.send(ctx, state)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = StatusFailed
		f.result = Result{Message: Message(err), Err: err}
		f.logger.Warn("submission failed", zap.String("message", f.result.Message), zap.Error(err))
		return f.result, err
	}
	f.status = StatusSucceeded
	f.result = Result{Confirmation: &conf}
	f.logger.Info("submission succeeded", zap.String("download_url", conf.DownloadURL))
	return f.result, nil
}

func (f *Form) send(ctx context.Context, state model.FormState) (model.Confirmation, error) {
	payload, err := normalize.Normalize(state, f.normalizeOptions...)
	if err != nil {
		return model.Confirmation{}, fmt.Errorf("form: normalize: %w", err)
	}
	if f.sender == nil {
		return model.Confirmation{}, ErrNoSender
	}
	return f.sender.Submit(ctx, payload)
}

// Message returns the text shown to the user for a failed submission.
func Message(err error) string {
	var subErr *submission.Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &subErr):
		return subErr.Message
	case errors.Is(err, normalize.ErrReturnBeforeDeparture):
		return "Return date must not be before the departure date"
	case errors.Is(err, normalize.ErrInvalidDate):
		return "Please enter valid travel dates"
	default:
		return err.Error()
	}
}

func cloneErrors(errs validation.Errors) validation.Errors {
	if errs == nil {
		return nil
	}
	out := make(validation.Errors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
