// Package submission sends a normalized itinerary payload to the rendering
// service. A Client performs exactly one request per call with a fixed upper
// bound on wait time, never retries, and classifies failures into the Kinds
// the form reports to the user.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-itinerary/pkg/contract"
	"github.com/goliatone/go-itinerary/pkg/model"
)

// GeneratedFilesPath is where the service serves rendered PDFs by file name.
const GeneratedFilesPath = "/generated-pdfs/"

const maxResponseBytes = 1 << 20

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// Client talks to the itinerary rendering service.
type Client struct {
	baseURL   string
	timeout   time.Duration
	http      *http.Client
	logger    *zap.Logger
	checker   PayloadChecker
	requestID func() string
}

// New constructs a Client. A blank BaseURL falls back to DefaultBaseURL and a
// zero Timeout to DefaultTimeout.
func New(cfg Config, options ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:   base,
		timeout:   timeout,
		logger:    zap.NewNop(),
		requestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	switch {
	case c.http == nil:
		c.http = &http.Client{Timeout: timeout}
	case c.http.Timeout == 0:
		clone := *c.http
		clone.Timeout = timeout
		c.http = &clone
	}
	return c
}

// BaseURL reports the configured service root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout reports the request time limit.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

type generateResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		TripSummary *model.TripSummary `json:"tripSummary"`
		DownloadURL string             `json:"downloadUrl"`
	} `json:"data"`
}

// Submit posts payload to the generation endpoint. Failures are returned as
// *Error.
func (c *Client) Submit(ctx context.Context, payload model.Payload) (model.Confirmation, error) {
	if c.checker != nil {
		if err := c.checker.CheckPayload(payload); err != nil {
			c.logger.Warn("payload rejected before sending", zap.Error(err))
			return model.Confirmation{}, internalError(err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.Confirmation{}, unexpectedError(fmt.Errorf("encode payload: %w", err))
	}

	endpoint := c.baseURL + contract.GeneratePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.Confirmation{}, unexpectedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	reqID := c.requestID()
	req.Header.Set("X-Request-ID", reqID)
	log := c.logger.With(zap.String("request_id", reqID))
	log.Info("api request",
		zap.String("method", req.Method),
		zap.String("url", endpoint),
		zap.String("traveler", payload.Traveler.Name),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("api request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		if errors.Is(ctx.Err(), context.Canceled) {
			return model.Confirmation{}, unexpectedError(ctx.Err())
		}
		return model.Confirmation{}, connectivityError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("api response read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return model.Confirmation{}, internalError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		subErr := statusError(resp.StatusCode, serverMessage(data))
		log.Warn("api response error",
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(subErr.Kind)),
			zap.String("message", subErr.Message),
			zap.Duration("elapsed", time.Since(start)),
		)
		return model.Confirmation{}, subErr
	}
	log.Info("api response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return model.Confirmation{}, unexpectedError(fmt.Errorf("decode response: %w", err))
	}
	if decoded.Data == nil || decoded.Data.TripSummary == nil || decoded.Data.DownloadURL == "" {
		return model.Confirmation{}, unexpectedError(errors.New("response is missing the trip summary or download url"))
	}

	return model.Confirmation{
		TripSummary:  *decoded.Data.TripSummary,
		DownloadPath: decoded.Data.DownloadURL,
		DownloadURL:  c.DownloadURL(decoded.Data.DownloadURL),
	}, nil
}

// HealthCheck calls the health endpoint and returns its body. Any failure,
// including a non-200 status or an empty body, wraps ErrServerNotResponding.
func (c *Client) HealthCheck(ctx context.Context) ([]byte, error) {
	endpoint := c.baseURL + contract.HealthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("health check failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %s", ErrServerNotResponding, resp.Status)
	case len(bytes.TrimSpace(data)) == 0:
		return nil, fmt.Errorf("%w: empty body", ErrServerNotResponding)
	}
	return data, nil
}

// DownloadURL joins a relative download path returned by the service to the
// base URL. Absolute URLs are returned unchanged.
func (c *Client) DownloadURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if u, err := url.Parse(trimmed); err == nil && u.IsAbs() {
		return trimmed
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return c.baseURL + trimmed
}

// GeneratedFileURL returns the public URL of a rendered PDF by file name.
func (c *Client) GeneratedFileURL(filename string) string {
	return c.baseURL + GeneratedFilesPath + url.PathEscape(strings.TrimSpace(filename))
}

// serverMessage extracts a "message" string from a JSON error body and strips
// any markup from it. Non-JSON bodies yield "".
func serverMessage(body []byte) string {
	var decoded struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}
	cleaned := html.UnescapeString(messageSanitizer().Sanitize(decoded.Message))
	return strings.Join(strings.Fields(cleaned), " ")
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
