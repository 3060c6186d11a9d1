// Package render formats form outcomes for the terminal using pongo2
// templates: the confirmation of a generated itinerary, a review of the
// payload about to be sent, and the list of validation failures.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-itinerary/pkg/model"
)

const templateExt = ".tpl"

//go:embed templates/*.tpl
var builtinTemplates embed.FS

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	globals   map[string]any
}

// WithTemplates replaces the embedded templates. The FS must provide
// confirmation.tpl, review.tpl and issues.tpl at its root.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// Engine renders named templates from a pongo2 template set.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
	defaultErr    error
)

// Default returns an engine over the embedded templates.
func Default() (*Engine, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = NewEngine()
	})
	return defaultEngine, defaultErr
}

// NewEngine constructs an Engine.
func NewEngine(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files := cfg.templates
	if files == nil {
		sub, err := fs.Sub(builtinTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("render: open embedded templates: %w", err)
		}
		files = sub
	}

	e := &Engine{
		set:       pongo2.NewSet("itinerary", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}
	registerFilters()

	if len(cfg.globals) > 0 {
		globals, err := toContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("render: convert globals: %w", err)
		}
		if e.set.Globals == nil {
			e.set.Globals = make(pongo2.Context)
		}
		e.set.Globals.Update(globals)
	}
	return e, nil
}

// Render executes the named template with data and copies the result to
// every writer in out.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("render: engine is nil")
	}
	if !strings.HasSuffix(name, templateExt) {
		name += templateExt
	}

	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("render: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

// toContext turns data into a template context keyed by JSON field names.
// Numbers are kept as json.Number so integers print without a fraction.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("template data must encode as an object: %w", err)
	}
	return pongo2.Context(out), nil
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("money") {
			_ = pongo2.RegisterFilter("money", filterMoney)
		}
	})
}

// filterMoney formats an amount with two decimals prefixed by the currency
// given as parameter: {{ price|money:"INR" }} -> "INR 1500.00".
func filterMoney(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(in.String()), 64)
	if err != nil {
		amount = 0
	}
	currency := model.DefaultCurrency
	if param != nil && !param.IsNil() {
		if c := strings.TrimSpace(param.String()); c != "" {
			currency = c
		}
	}
	return pongo2.AsValue(fmt.Sprintf("%s %.2f", currency, amount)), nil
}
