package handlers

import (
	"net/http"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// SubscriptionHandler implements the subscription endpoints.
type SubscriptionHandler struct {
	Subscriptions SubscriptionEngine
	Sessions      SessionManager
}

type userPageResponse struct {
	Users []models.OwnerSummary `json:"users"`
	Meta  pipeline.Meta         `json:"meta"`
}

// Toggle handles POST /api/v1/channels/{id}/subscribe.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	state, err := h.Subscriptions.Toggle(ctx, actor, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toggleResponse{State: state})
}

// Subscribers handles GET /api/v1/channels/{id}/subscribers.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, meta, err := h.Subscriptions.Subscribers(ctx, r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, userPageResponse{Users: users, Meta: meta})
}

// Channels handles GET /api/v1/users/{id}/subscriptions.
func (h SubscriptionHandler) Channels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, meta, err := h.Subscriptions.Channels(ctx, r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, userPageResponse{Users: users, Meta: meta})
}
