// Package tui fills and submits an itinerary form from an interactive
// terminal session built on survey prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-itinerary/pkg/fieldgroup"
	"github.com/goliatone/go-itinerary/pkg/form"
	"github.com/goliatone/go-itinerary/pkg/render"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

// Session walks a user through the form section by section.
type Session struct {
	driver     PromptDriver
	out        io.Writer
	surveyOpts []survey.AskOpt
	engine     *render.Engine
	theme      Theme
}

// New constructs a session with defaults (survey driver on stdout, embedded
// templates).
func New(options ...Option) (*Session, error) {
	s := &Session{
		out:   os.Stdout,
		theme: DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.driver == nil {
		s.driver = newSurveyDriver(s.out, s.surveyOpts...)
	}
	if s.engine == nil {
		engine, err := render.Default()
		if err != nil {
			return nil, fmt.Errorf("tui: template engine: %w", err)
		}
		s.engine = engine
	}
	return s, nil
}

// Run fills every section of f and then submits it.
func (s *Session) Run(ctx context.Context, f *form.Form) (form.Result, error) {
	if f == nil {
		return form.Result{}, ErrNilForm
	}
	if err := s.Fill(ctx, f); err != nil {
		return form.Result{}, err
	}
	return s.Submit(ctx, f)
}

// Fill prompts for every section. Current form values are offered as
// defaults, so a form loaded from a file can be reviewed quickly.
func (s *Session) Fill(ctx context.Context, f *form.Form) error {
	if f == nil {
		return ErrNilForm
	}
	steps := []func(context.Context, *form.Form) error{
		s.traveler,
		s.trip,
		s.activities,
		s.flights,
		s.hotels,
		s.services,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Submit sends the form. Fields that fail validation are asked again and
// the form is resubmitted; after a failed request the user may submit again
// or give up, in which case the error is joined with ErrGaveUp.
func (s *Session) Submit(ctx context.Context, f *form.Form) (form.Result, error) {
	if f == nil {
		return form.Result{}, ErrNilForm
	}
	for {
		if err := s.info(ctx, "Generating itinerary..."); err != nil {
			return form.Result{}, err
		}

		result, err := f.Submit(ctx)
		var errs validation.Errors
		switch {
		case err == nil:
			summary, rerr := s.engine.Confirmation(*result.Confirmation)
			if rerr != nil {
				return result, fmt.Errorf("tui: render confirmation: %w", rerr)
			}
			return result, s.info(ctx, strings.TrimRight(summary, "\n"))
		case errors.As(err, &errs):
			if err := s.fix(ctx, f, errs); err != nil {
				return result, err
			}
		case errors.Is(err, form.ErrInFlight):
			return result, err
		default:
			if ierr := s.fail(ctx, result.Message); ierr != nil {
				return result, ierr
			}
			again, cerr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit again?", Default: true})
			if cerr != nil {
				return result, cerr
			}
			if !again {
				return result, errors.Join(ErrGaveUp, err)
			}
		}
	}
}

func (s *Session) fix(ctx context.Context, f *form.Form, errs validation.Errors) error {
	summary, err := s.engine.Issues(errs)
	if err != nil {
		return fmt.Errorf("tui: render issues: %w", err)
	}
	if err := s.fail(ctx, strings.TrimRight(summary, "\n")); err != nil {
		return err
	}
	for _, path := range errs.Paths() {
		p, ok := promptFor(path)
		if !ok {
			return fmt.Errorf("tui: no prompt for %s: %w", path, errs)
		}
		if err := s.ask(ctx, f, path, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) traveler(ctx context.Context, f *form.Form) error {
	if err := s.section(ctx, "Traveler details"); err != nil {
		return err
	}
	return s.askAll(ctx, f, "userDetails", travelerPrompts)
}

func (s *Session) trip(ctx context.Context, f *form.Form) error {
	if err := s.section(ctx, "Trip details"); err != nil {
		return err
	}
	return s.askAll(ctx, f, "tripDetails", tripPrompts)
}

func (s *Session) activities(ctx context.Context, f *form.Form) error {
	return s.rows(ctx, f, "Activities", fieldgroup.Activities)
}

func (s *Session) flights(ctx context.Context, f *form.Form) error {
	return s.rows(ctx, f, "Flights", fieldgroup.Flights)
}

func (s *Session) hotels(ctx context.Context, f *form.Form) error {
	return s.rows(ctx, f, "Hotel bookings", fieldgroup.Hotels)
}

func (s *Session) services(ctx context.Context, f *form.Form) error {
	if err := s.section(ctx, "Payment information"); err != nil {
		return err
	}
	if err := s.askAll(ctx, f, "additionalServices", servicePrompts); err != nil {
		return err
	}

	const visaPath = "additionalServices.visa.required"
	current, _ := f.Value(visaPath)
	required, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Is a visa required?", Default: current == "true"})
	if err != nil {
		return err
	}
	if err := f.SetValue(visaPath, strconv.FormatBool(required)); err != nil {
		return fmt.Errorf("tui: set %s: %w", visaPath, err)
	}
	if !required {
		return nil
	}
	return s.askAll(ctx, f, "additionalServices", visaPrompts)
}

// rows asks for every existing record of group, then offers to append more.
func (s *Session) rows(ctx context.Context, f *form.Form, title string, group fieldgroup.Group) error {
	if err := s.section(ctx, title); err != nil {
		return err
	}
	for i := 0; i < f.Len(group); i++ {
		if err := s.askRow(ctx, f, group, i); err != nil {
			return err
		}
	}

	noun := rowNoun(group)
	for {
		question := fmt.Sprintf("Add a %s?", noun)
		if f.Len(group) > 0 {
			question = fmt.Sprintf("Add another %s?", noun)
		}
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: question})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		position, err := f.Append(group, nil)
		if err != nil {
			return fmt.Errorf("tui: add %s: %w", noun, err)
		}
		if err := s.askRow(ctx, f, group, position); err != nil {
			return err
		}
	}
}

func (s *Session) askRow(ctx context.Context, f *form.Form, group fieldgroup.Group, position int) error {
	noun := rowNoun(group)
	if err := s.info(ctx, fmt.Sprintf("%s %d", strings.ToUpper(noun[:1])+noun[1:], position+1)); err != nil {
		return err
	}
	return s.askAll(ctx, f, fmt.Sprintf("%s.%d", group, position), rowPrompts(group))
}

func (s *Session) askAll(ctx context.Context, f *form.Form, base string, prompts []prompt) error {
	for _, p := range prompts {
		if err := s.ask(ctx, f, base+"."+p.key, p); err != nil {
			return err
		}
	}
	return nil
}

// ask prompts for one field until the form accepts the answer.
func (s *Session) ask(ctx context.Context, f *form.Form, path string, p prompt) error {
	current, _ := f.Value(path)
	for {
		var (
			value string
			err   error
		)
		switch {
		case len(p.options) > 0:
			var idx int
			idx, err = s.driver.Select(ctx, SelectConfig{
				Message:      p.label,
				Options:      p.options,
				DefaultIndex: indexOf(p.options, current),
				Help:         p.help,
			})
			if err == nil && (idx < 0 || idx >= len(p.options)) {
				if ferr := s.fail(ctx, fmt.Sprintf("Invalid %s selection", p.label)); ferr != nil {
					return ferr
				}
				continue
			}
			if err == nil {
				value = p.options[idx]
			}
		case p.multiline:
			value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: p.label, Default: current, Help: p.help})
		default:
			value, err = s.driver.Input(ctx, InputConfig{Message: p.label, Default: current, Help: p.help})
		}
		if err != nil {
			return err
		}

		if err := f.SetValue(path, value); err != nil {
			if errors.Is(err, form.ErrInvalidValue) {
				if ferr := s.fail(ctx, err.Error()); ferr != nil {
					return ferr
				}
				continue
			}
			return fmt.Errorf("tui: set %s: %w", path, err)
		}
		return nil
	}
}

func (s *Session) section(ctx context.Context, title string) error {
	return s.driver.Info(ctx, s.theme.SectionPrefix+title)
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) fail(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}
