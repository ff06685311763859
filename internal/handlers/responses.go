package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondFault translates a service failure into an HTTP error response.
func respondFault(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch faults.KindOf(err) {
	case faults.KindInvalidInput:
		status = http.StatusBadRequest
		message = err.Error()
	case faults.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case faults.KindForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case faults.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	default:
		logging.FromContext(ctx).Error("unclassified service failure", "error", err)
	}

	respondJSON(ctx, w, status, map[string]string{"error": message})
}
