package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-itinerary/internal/input"
	"github.com/goliatone/go-itinerary/pkg/contract"
	"github.com/goliatone/go-itinerary/pkg/normalize"
	"github.com/goliatone/go-itinerary/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck saved itinerary form states (JSON or YAML) without submitting them.\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	reversed := flag.Bool("allow-reversed-dates", false, "accept a return date before the departure date")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := contract.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load contract: %v\n", err)
		os.Exit(1)
	}

	var normalizeOpts []normalize.Option
	if *reversed {
		normalizeOpts = append(normalizeOpts, normalize.WithReversedDates())
	}

	ctx := context.Background()
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, c, path, normalizeOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// lintFile reports field rule failures first. A form that passes them is
// normalized and checked against the service contract.
func lintFile(ctx context.Context, c *contract.Contract, path string, opts []normalize.Option) ([]violation, error) {
	state, err := input.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	if errs := validation.Validate(state); len(errs) > 0 {
		result := make([]violation, 0, len(errs))
		for _, issue := range errs.Issues() {
			result = append(result, violation{file: path, location: issue.Path, message: issue.Message})
		}
		return result, nil
	}

	payload, err := normalize.Normalize(state, opts...)
	if err != nil {
		return []violation{{file: path, location: "tripDetails", message: err.Error()}}, nil
	}
	if err := c.CheckPayload(payload); err != nil {
		if errors.Is(err, contract.ErrPayloadRejected) {
			return []violation{{file: path, location: "payload", message: err.Error()}}, nil
		}
		return nil, err
	}
	return nil, nil
}
