package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bloodlink/pkg/types"
)

const msgLatLonRequired = "Latitude and longitude are required"

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("failed to encode response")
	}
}

func (s *Service) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.writeJSON(w, r, status, envelope{Success: true, Data: data})
}

// writeList is writeData plus a count, and never renders a nil slice as null.
func writeList[T any](s *Service, w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	s.writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: items, Count: &n})
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, envelope{Success: false, Error: msg})
}

// handleError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a bare 500.
func (s *Service) handleError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		s.writeError(w, r, http.StatusBadRequest, publicMessage(err))
	case errors.Is(err, types.ErrDonorNotFound):
		s.writeError(w, r, http.StatusNotFound, "Donor not found")
	case errors.Is(err, types.ErrRequestNotFound):
		s.writeError(w, r, http.StatusNotFound, "Request not found")
	case errors.Is(err, types.ErrAlreadyExists):
		s.writeError(w, r, http.StatusConflict, "record already exists")
	default:
		s.logger.WithError(err).WithField("path", r.URL.Path).Error(op + " failed")
		s.writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// publicMessage drops the wrapping context in front of an invalid-argument
// error and keeps the part meant for the client.
func publicMessage(err error) string {
	msg := err.Error()
	marker := types.ErrInvalidArgument.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

func (s *Service) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}

	return true
}

func (s *Service) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "not found")
}

func (s *Service) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Service) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Blood Donation API is running!"))
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"status":      "ok",
		"storageMode": s.mode.StorageMode(),
	}
	if since := s.mode.ChangedAt(); !since.IsZero() {
		out["storageModeSince"] = since.UTC().Format(time.RFC3339Nano)
	}

	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	out, err := s.stats.Compute(r.Context())
	if err != nil {
		s.handleError(w, r, err, "compute stats")
		return
	}

	s.writeData(w, r, http.StatusOK, out)
}
