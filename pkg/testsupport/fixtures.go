// Package testsupport holds fixtures and fakes shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"path"
	"testing"

	"github.com/goliatone/go-itinerary/internal/input"
	"github.com/goliatone/go-itinerary/pkg/model"
)

//go:embed testdata/*.yaml
var fixtures embed.FS

// LoadFormState parses the named fixture ("singapore") from testdata.
func LoadFormState(name string) (model.FormState, error) {
	file := path.Join("testdata", name+".yaml")
	data, err := fixtures.ReadFile(file)
	if err != nil {
		return model.FormState{}, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	return input.Parse(data, file)
}

// MustLoadFormState is LoadFormState for tests.
func MustLoadFormState(t *testing.T, name string) model.FormState {
	t.Helper()

	state, err := LoadFormState(name)
	if err != nil {
		t.Fatalf("load form state: %v", err)
	}
	return state
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs a render function that writes to an io.Writer and
// returns both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
