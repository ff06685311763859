package handlers

import (
	"net/http"

	"github.com/streamhive/backend/internal/models"
)

// LikeHandler implements the like toggle and listing endpoints.
type LikeHandler struct {
	Likes    LikeEngine
	Sessions SessionManager
}

type toggleResponse struct {
	State models.ToggleState `json:"state"`
}

// ToggleVideo handles POST /api/v1/videos/{id}/like.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeVideo)
}

// ToggleComment handles POST /api/v1/comments/{id}/like.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeComment)
}

// TogglePost handles POST /api/v1/posts/{id}/like.
func (h LikeHandler) TogglePost(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikePost)
}

func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind models.LikeKind) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	state, err := h.Likes.Toggle(ctx, actor, kind, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toggleResponse{State: state})
}

// LikedVideos handles GET /api/v1/videos/liked.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	views, meta, err := h.Likes.LikedVideos(ctx, actor, pageFromQuery(r))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, videoPageResponse{Videos: views, Meta: meta})
}
