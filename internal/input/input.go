// Package input reads a prepared form state from a file, stdin, an fs.FS or
// an HTTP URL. Documents may be JSON or YAML; YAML also accepts bare numbers
// for the text fields ("numberOfTravelers: 2").
package input

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-itinerary/pkg/model"
)

// Stdin is the location that reads from standard input.
const Stdin = "-"

const defaultTimeout = 10 * time.Second

// ErrEmpty is returned for documents without content.
var ErrEmpty = errors.New("input: document is empty")

// Option configures Load.
type Option func(*loader)

type loader struct {
	fs    fs.FS
	http  *http.Client
	stdin io.Reader
}

// WithFS resolves relative locations inside files instead of the working
// directory.
func WithFS(files fs.FS) Option {
	return func(l *loader) {
		l.fs = files
	}
}

// WithHTTPClient overrides the client used for http(s) locations.
func WithHTTPClient(client *http.Client) Option {
	return func(l *loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithStdin overrides the reader used for the "-" location.
func WithStdin(r io.Reader) Option {
	return func(l *loader) {
		if r != nil {
			l.stdin = r
		}
	}
}

// Load reads and parses the form state at location.
func Load(ctx context.Context, location string, options ...Option) (model.FormState, error) {
	l := &loader{stdin: os.Stdin}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return model.FormState{}, errors.New("input: location is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormState{}, err
	}

	var (
		data []byte
		err  error
	)
	switch {
	case location == Stdin:
		data, err = io.ReadAll(l.stdin)
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		data, err = l.fetch(ctx, location)
	case l.fs != nil:
		data, err = fs.ReadFile(l.fs, location)
	default:
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return model.FormState{}, fmt.Errorf("input: read %s: %w", location, err)
	}
	return Parse(data, location)
}

func (l *loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.http
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Parse decodes a JSON or YAML form state. source names the document in
// error messages.
func Parse(data []byte, source string) (model.FormState, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormState{}, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var state model.FormState
	if err := json.Unmarshal(data, &state); err == nil {
		return state, nil
	}

	state = model.FormState{}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return model.FormState{}, fmt.Errorf("input: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return state, nil
}
