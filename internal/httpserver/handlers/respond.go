package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/logger"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeMalformedPayload   = "malformed_payload"
	CodeIndexOutOfRange    = "index_out_of_range"
	CodePreconditionFailed = "precondition_failed"
	CodeConflict           = "concurrent_modification"
	CodeStorageCorruption  = "storage_corruption"
	CodeUnavailable        = "storage_unavailable"
	CodeNotFound           = "not_found"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// classify maps a service error onto an HTTP status and error code.
func classify(err error) (int, string) {
	var conflict *domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest, CodeMalformedPayload
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity, CodeIndexOutOfRange
	case errors.As(err, &conflict):
		// revision supplied by the client no longer matches
		return http.StatusPreconditionFailed, CodePreconditionFailed
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrStorageCorruption):
		return http.StatusInternalServerError, CodeStorageCorruption
	default:
		return http.StatusServiceUnavailable, CodeUnavailable
	}
}

// writeError renders err as {"error","code"}. Storage failures are not
// echoed verbatim to the client.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status, code := classify(err)

	msg := err.Error()
	switch code {
	case CodeStorageCorruption:
		msg = "stored document is corrupt"
	case CodeUnavailable:
		msg = "document store unavailable"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "document store timed out"
		}
		log.Warn("request failed", logger.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// NotFound answers unmatched paths and methods alike.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found", Code: CodeNotFound})
}

// etag quotes a revision for use in ETag headers.
func etag(rev string) string {
	return `"` + rev + `"`
}

// parseIfMatch extracts the revision from an If-Match header.
// "*" and an absent header both mean "any revision".
func parseIfMatch(h string) string {
	h = strings.TrimSpace(h)
	if h == "" || h == "*" {
		return ""
	}
	h = strings.TrimPrefix(h, "W/")
	return strings.Trim(h, `"`)
}
