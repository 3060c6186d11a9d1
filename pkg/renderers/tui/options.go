package tui

import (
	"io"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-itinerary/pkg/render"
)

// Theme captures optional prefixes applied to printed messages.
type Theme struct {
	SectionPrefix string
	InfoPrefix    string
	ErrorPrefix   string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	SectionPrefix: "== ",
	ErrorPrefix:   "! ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithSurveyOptions forwards options (stdio, icons) to every survey prompt
// of the default driver.
func WithSurveyOptions(opts ...survey.AskOpt) Option {
	return func(s *Session) {
		s.surveyOpts = append(s.surveyOpts, opts...)
	}
}

// WithRenderer sets the template engine used for summaries.
func WithRenderer(engine *render.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
