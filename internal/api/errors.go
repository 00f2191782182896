package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jbweber/homelab/stagerad/internal/auth"
	"github.com/jbweber/homelab/stagerad/internal/logger"
	"github.com/jbweber/homelab/stagerad/internal/repository"
	"github.com/jbweber/homelab/stagerad/internal/service"
)

const problemBaseURL = "https://www.jhipster.tech/problem"

// Problem is the error body returned by every endpoint
type Problem struct {
	Type       string `json:"type,omitempty"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message,omitempty"`
	EntityName string `json:"entityName,omitempty"`
	ErrorKey   string `json:"errorKey,omitempty"`
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeProblem writes a problem document with the given status
func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Type == "" {
		p.Type = problemBaseURL + "/problem-with-message"
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if p.Message == "" {
		p.Message = fmt.Sprintf("error.http.%d", p.Status)
	}
	p.Path = r.URL.Path

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logger.Error().Err(err).Msg("failed to encode problem response")
	}
}

// writeBadRequest reports a request the server could not parse
func writeBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, Problem{Status: http.StatusBadRequest, Detail: detail})
}

// writeError maps service and store errors onto HTTP responses
func (h *HeaderUtil) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.FailureAlert(w, verr.EntityName, verr.ErrorKey)
		writeProblem(w, r, Problem{
			Type:       problemBaseURL + "/problem-with-message",
			Title:      verr.Message,
			Status:     http.StatusBadRequest,
			Message:    "error." + verr.ErrorKey,
			EntityName: verr.EntityName,
			ErrorKey:   verr.ErrorKey,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeProblem(w, r, Problem{Status: http.StatusNotFound})
	case errors.Is(err, repository.ErrInvalidSort):
		writeProblem(w, r, Problem{Status: http.StatusBadRequest, Detail: err.Error()})
	case errors.Is(err, auth.ErrUnauthenticated):
		writeProblem(w, r, Problem{Status: http.StatusUnauthorized})
	default:
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, r, Problem{Status: http.StatusInternalServerError, Detail: "internal server error"})
	}
}

// decodeJSON decodes the request body into dst, bounded by maxBytes. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) bool {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, r, Problem{
				Status: http.StatusRequestEntityTooLarge,
				Detail: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return false
		}
		writeBadRequest(w, r, "Invalid JSON")
		return false
	}
	return true
}
