package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// CommentHandler implements the comment endpoints.
type CommentHandler struct {
	Comments CommentCatalog
	Sessions SessionManager
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentPageResponse struct {
	Comments []models.CommentView `json:"comments"`
	Meta     pipeline.Meta        `json:"meta"`
}

// Add handles POST /api/v1/videos/{id}/comments.
func (h CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid comment payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := h.Comments.Add(ctx, actor, r.PathValue("id"), req.Content)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, comment)
}

// Update handles PATCH /api/v1/comments/{id}.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid comment payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := h.Comments.Update(ctx, actor, r.PathValue("id"), req.Content)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, comment)
}

// Delete handles DELETE /api/v1/comments/{id}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Comments.Delete(ctx, actor, r.PathValue("id")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/videos/{id}/comments.
func (h CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comments, meta, err := h.Comments.List(ctx, r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, commentPageResponse{Comments: comments, Meta: meta})
}
