package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rentroll/internal/core"
)

// errorResponse is the error envelope for every non-2xx response. The detail
// is either a plain message or a list of field violations.
type errorResponse struct {
	Detail any `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeValidationError(w http.ResponseWriter, verr *core.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: verr.Fields})
}
