package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-itinerary/pkg/model"
)

// Response is one scripted answer of a Service.
type Response struct {
	Status int
	Body   string
}

// Created is the service's answer for a generated itinerary.
func Created(summary model.TripSummary, downloadURL string) Response {
	body, _ := json.Marshal(map[string]any{
		"success": true,
		"message": "Itinerary generated successfully",
		"data": map[string]any{
			"tripSummary": summary,
			"downloadUrl": downloadURL,
		},
	})
	return Response{Status: http.StatusCreated, Body: string(body)}
}

// Service is a fake rendering service. Generation requests are answered
// with the scripted responses in order; the last one repeats.
type Service struct {
	*httptest.Server

	mu        sync.Mutex
	responses []Response
	payloads  []model.Payload
}

// NewService starts a fake service closed at the end of the test.
func NewService(t *testing.T, responses ...Response) *Service {
	t.Helper()

	s := &Service{responses: responses}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate-itinerary", s.generate)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"OK"}`)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *Service) generate(w http.ResponseWriter, r *http.Request) {
	var payload model.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"malformed payload"}`)
		return
	}

	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	resp := Response{Status: http.StatusInternalServerError}
	switch len(s.responses) {
	case 0:
	case 1:
		resp = s.responses[0]
	default:
		resp = s.responses[0]
		s.responses = s.responses[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// Payloads returns the decoded payloads received so far.
func (s *Service) Payloads() []model.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Payload(nil), s.payloads...)
}

// Requests reports how many generation requests arrived.
func (s *Service) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}
