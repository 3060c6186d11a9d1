// Package contract carries the OpenAPI description of the itinerary rendering
// service and checks outgoing payloads against its request schema, so a
// payload the service would reject is caught before the network call.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-itinerary/pkg/model"
)

const (
	// GeneratePath is the itinerary generation endpoint.
	GeneratePath = "/api/generate-itinerary"
	// HealthPath is the health check endpoint.
	HealthPath = "/health"
)

// ErrPayloadRejected wraps schema violations found by CheckPayload.
var ErrPayloadRejected = errors.New("contract: payload does not match the service schema")

//go:embed openapi.yaml
var document []byte

// Document returns the raw OpenAPI document.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Contract holds the parsed service description.
type Contract struct {
	api     *openapi3.T
	request *openapi3.Schema
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default returns the contract parsed from the embedded document.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), document)
	})
	return defaultContract, defaultErr
}

// Load parses and validates an OpenAPI document describing the service.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := api.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	request, err := requestSchema(api, GeneratePath)
	if err != nil {
		return nil, err
	}
	return &Contract{api: api, request: request}, nil
}

// OperationID reports the operation id declared for method and path, or ""
// when the document does not describe it.
func (c *Contract) OperationID(method, path string) string {
	if c == nil || c.api == nil || c.api.Paths == nil {
		return ""
	}
	item := c.api.Paths.Find(path)
	if item == nil {
		return ""
	}
	if op := item.GetOperation(method); op != nil {
		return op.OperationID
	}
	return ""
}

// CheckPayload validates payload against the request schema.
func (c *Contract) CheckPayload(payload model.Payload) error {
	if c == nil || c.request == nil {
		return errors.New("contract: not loaded")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("contract: encode payload: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("contract: decode payload: %w", err)
	}
	if err := c.request.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadRejected, err)
	}
	return nil
}

func requestSchema(api *openapi3.T, path string) (*openapi3.Schema, error) {
	if api.Paths == nil {
		return nil, errors.New("contract: document has no paths")
	}
	item := api.Paths.Find(path)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s not described", path)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no request body", path)
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no JSON schema", path)
	}
	return media.Schema.Value, nil
}
