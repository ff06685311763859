package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/streamhive/backend/internal/catalog"
	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
)

// PlaylistHandler implements the playlist endpoints.
type PlaylistHandler struct {
	Playlists PlaylistCatalog
	Sessions  SessionManager
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type playlistListResponse struct {
	Playlists []models.PlaylistSummary `json:"playlists"`
}

// Create handles POST /api/v1/playlists.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid playlist payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	playlist, err := h.Playlists.Create(ctx, actor, req.Name, req.Description)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, playlist)
}

// Get handles GET /api/v1/playlists/{id}.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.Playlists.Get(ctx, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, view)
}

// Update handles PATCH /api/v1/playlists/{id}.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req updatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid playlist payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	playlist, err := h.Playlists.Update(ctx, catalog.UpdatePlaylistInput{
		ActorID:     actor,
		PlaylistID:  r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, playlist)
}

// Delete handles DELETE /api/v1/playlists/{id}.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Playlists.Delete(ctx, actor, r.PathValue("id")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVideo handles POST /api/v1/playlists/{id}/videos/{videoId}.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Playlists.AddVideo(ctx, actor, r.PathValue("id"), r.PathValue("videoId")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveVideo handles DELETE /api/v1/playlists/{id}/videos/{videoId}.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Playlists.RemoveVideo(ctx, actor, r.PathValue("id"), r.PathValue("videoId")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByOwner handles GET /api/v1/users/{id}/playlists.
func (h PlaylistHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlists, err := h.Playlists.ListByOwner(ctx, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, playlistListResponse{Playlists: playlists})
}
