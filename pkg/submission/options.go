package submission

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-itinerary/pkg/model"
)

const (
	// DefaultBaseURL is used when the configuration leaves the base URL blank.
	DefaultBaseURL = "https://vigovia-render-1.onrender.com"
	// DefaultTimeout bounds every request; PDF generation is slow.
	DefaultTimeout = 30 * time.Second
)

// Config holds the explicit connection settings of a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// PayloadChecker validates a payload before it is sent. contract.Contract
// satisfies it.
type PayloadChecker interface {
	CheckPayload(model.Payload) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Its Timeout is replaced by the
// configured timeout when unset.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger enables request/response logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPayloadChecker validates payloads before they are sent; a rejected
// payload fails with KindUnexpected and no request is made.
func WithPayloadChecker(checker PayloadChecker) Option {
	return func(c *Client) {
		c.checker = checker
	}
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}
