package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-itinerary/internal/config"
	"github.com/goliatone/go-itinerary/internal/ident"
	"github.com/goliatone/go-itinerary/internal/input"
	"github.com/goliatone/go-itinerary/internal/logging"
	"github.com/goliatone/go-itinerary/pkg/contract"
	"github.com/goliatone/go-itinerary/pkg/form"
	"github.com/goliatone/go-itinerary/pkg/normalize"
	"github.com/goliatone/go-itinerary/pkg/render"
	"github.com/goliatone/go-itinerary/pkg/renderers/tui"
	"github.com/goliatone/go-itinerary/pkg/submission"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

type flags struct {
	input    string
	baseURL  string
	envFile  string
	logLevel string
	health   bool
	dryRun   bool
}

func main() {
	var opts flags
	flag.StringVar(&opts.input, "input", "", "form state file, URL, or - for stdin (prompts interactively when empty)")
	flag.StringVar(&opts.baseURL, "base-url", "", "rendering service base URL (overrides ITINERARY_API_BASE_URL)")
	flag.StringVar(&opts.envFile, "env-file", "", "dotenv file to load (defaults to .env)")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")
	flag.BoolVar(&opts.health, "health", false, "check the rendering service and exit")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "print the review and request payload without submitting")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		stop()
		log.Fatalf("itinerary: %v", err)
	}
}

func run(ctx context.Context, opts flags) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if opts.baseURL != "" {
		cfg.APIBaseURL = strings.TrimRight(opts.baseURL, "/")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if opts.logLevel != "" {
		cfg.LoggerLevel = opts.logLevel
	}

	logger, cleanup, err := logging.New(logging.Options{
		Level:      cfg.LoggerLevel,
		Format:     cfg.LoggerFormat,
		OutputPath: cfg.LoggerOutputPath,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	if opts.health {
		body, err := client.HealthCheck(ctx)
		if errors.Is(err, submission.ErrServerNotResponding) {
			return fmt.Errorf("Server is not responding (%s): %w", client.BaseURL(), err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s is up: %s\n", client.BaseURL(), strings.TrimSpace(string(body)))
		return nil
	}

	ids, err := ident.New(cfg.NodeID)
	if err != nil {
		return err
	}
	formOpts := []form.Option{form.WithIDSource(ids), form.WithLogger(logger)}
	if cfg.AllowReversedDates {
		formOpts = append(formOpts, form.WithNormalizeOptions(normalize.WithReversedDates()))
	}
	f := form.New(client, formOpts...)

	engine, err := render.Default()
	if err != nil {
		return err
	}

	if opts.input != "" {
		state, err := input.Load(ctx, opts.input)
		if err != nil {
			return err
		}
		f.Load(state)
	}

	switch {
	case opts.dryRun:
		return review(f, engine)
	case opts.input != "":
		return submit(ctx, f, engine)
	}

	session, err := tui.New(tui.WithRenderer(engine))
	if err != nil {
		return err
	}
	if _, err := session.Run(ctx, f); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
		return err
	}
	return nil
}

func newClient(cfg config.Config, logger *zap.Logger) (*submission.Client, error) {
	options := []submission.Option{submission.WithLogger(logger)}
	if cfg.ContractCheck {
		c, err := contract.Default()
		if err != nil {
			return nil, err
		}
		options = append(options, submission.WithPayloadChecker(c))
	}
	return submission.New(submission.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, options...), nil
}

func review(f *form.Form, engine *render.Engine) error {
	payload, err := f.Payload()
	if err != nil {
		return reportInvalid(err, engine)
	}
	if _, err := engine.Review(payload, os.Stdout); err != nil {
		return err
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func submit(ctx context.Context, f *form.Form, engine *render.Engine) error {
	fmt.Println("Generating itinerary...")
	result, err := f.Submit(ctx)
	if err != nil {
		return reportInvalid(err, engine)
	}
	_, err = engine.Confirmation(*result.Confirmation, os.Stdout)
	return err
}

func reportInvalid(err error, engine *render.Engine) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return errors.New(form.Message(err))
	}
	if _, renderErr := engine.Issues(errs, os.Stderr); renderErr != nil {
		return renderErr
	}
	return fmt.Errorf("%d invalid field(s)", len(errs))
}
