package handlers

import (
	"net/http"
	"strings"

	"github.com/streamhive/backend/internal/logging"
)

// actorID resolves the authenticated user behind the request's bearer token.
// It writes the 401 response itself and returns false when the request
// carries no valid session.
func actorID(w http.ResponseWriter, r *http.Request, sessions SessionManager) (string, bool) {
	ctx := r.Context()

	if sessions == nil {
		logging.FromContext(ctx).Error("session manager unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "session service unavailable"})
		return "", false
	}

	token := bearerToken(r)
	if token == "" {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return "", false
	}

	userID, err := sessions.Validate(ctx, token)
	if err != nil {
		logging.FromContext(ctx).Warn("access token rejected", "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
		return "", false
	}
	return userID, true
}

// optionalActorID resolves the bearer token when the request carries one.
// Anonymous or invalid-token requests yield an empty actor; the endpoint
// stays readable either way.
func optionalActorID(r *http.Request, sessions SessionManager) string {
	if sessions == nil {
		return ""
	}
	token := bearerToken(r)
	if token == "" {
		return ""
	}
	userID, err := sessions.Validate(r.Context(), token)
	if err != nil {
		return ""
	}
	return userID
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
