package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
)

// PostHandler implements the post endpoints.
type PostHandler struct {
	Posts    PostCatalog
	Sessions SessionManager
}

type postRequest struct {
	Content string `json:"content"`
}

type postListResponse struct {
	Posts []models.Post `json:"posts"`
}

// Create handles POST /api/v1/posts.
func (h PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid post payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	post, err := h.Posts.Create(ctx, actor, req.Content)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, post)
}

// Update handles PATCH /api/v1/posts/{id}.
func (h PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid post payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	post, err := h.Posts.Update(ctx, actor, r.PathValue("id"), req.Content)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, post)
}

// Delete handles DELETE /api/v1/posts/{id}.
func (h PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Posts.Delete(ctx, actor, r.PathValue("id")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByOwner handles GET /api/v1/users/{id}/posts.
func (h PostHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.Posts.ListByOwner(ctx, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, postListResponse{Posts: posts})
}
