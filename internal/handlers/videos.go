package handlers

import (
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/streamhive/backend/internal/catalog"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// maxVideoUpload bounds the multipart payload of a video publication.
const maxVideoUpload = 512 << 20

// VideoHandler implements the video endpoints.
type VideoHandler struct {
	Videos   VideoCatalog
	Sessions SessionManager
	Media    MediaStore
	Likes    LikeEngine
}

type videoPageResponse struct {
	Videos []models.VideoView `json:"videos"`
	Meta   pipeline.Meta      `json:"meta"`
}

// Publish handles POST /api/v1/videos: a multipart form carrying the video
// file, an optional thumbnail and the title, description and duration fields.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}
	if h.Media == nil {
		logger.Error("media store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "media storage unavailable"})
		return
	}

	if err := r.ParseMultipartForm(maxVideoUpload); err != nil {
		logger.Warn("invalid multipart payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "a video file is required"})
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "a video file is required"})
		return
	}
	defer file.Close()

	duration := 0.0
	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		duration, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "duration must be a number of seconds"})
			return
		}
	}

	fileRef, err := h.Media.Save(ctx, path.Join("videos", actor, ids.New()+path.Ext(header.Filename)), file)
	if err != nil {
		logger.Error("store video file", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to store video"})
		return
	}

	var thumbRef models.MediaRef
	if thumb, thumbHeader, err := r.FormFile("thumbnail"); err == nil {
		defer thumb.Close()
		thumbRef, err = h.Media.Save(ctx, path.Join("thumbnails", actor, ids.New()+path.Ext(thumbHeader.Filename)), thumb)
		if err != nil {
			logger.Error("store thumbnail", "error", err)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to store thumbnail"})
			return
		}
	}

	video, err := h.Videos.Publish(ctx, catalog.PublishVideoInput{
		OwnerID:     actor,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		File:        fileRef,
		Thumbnail:   thumbRef,
		Duration:    duration,
	})
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, video)
}

type videoDetailResponse struct {
	models.VideoView
	Liked bool `json:"liked"`
}

// Get handles GET /api/v1/videos/{id}. Fetching a video registers a view.
// Authenticated callers also learn whether they currently like it.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.Videos.Get(ctx, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	resp := videoDetailResponse{VideoView: view}
	if actor := optionalActorID(r, h.Sessions); actor != "" && h.Likes != nil {
		liked, err := h.Likes.Liked(ctx, actor, models.LikeVideo, view.ID)
		if err != nil {
			respondFault(ctx, w, err)
			return
		}
		resp.Liked = liked
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Update handles PATCH /api/v1/videos/{id}.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid video payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	video, err := h.Videos.Update(ctx, catalog.UpdateVideoInput{
		ActorID:     actor,
		VideoID:     r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// UpdateThumbnail handles POST /api/v1/videos/{id}/thumbnail.
func (h VideoHandler) UpdateThumbnail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}
	if h.Media == nil {
		logger.Error("media store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "media storage unavailable"})
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		logger.Warn("invalid multipart payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "an image file is required"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "an image file is required"})
		return
	}
	defer file.Close()

	ref, err := h.Media.Save(ctx, path.Join("thumbnails", actor, ids.New()+path.Ext(header.Filename)), file)
	if err != nil {
		logger.Error("store thumbnail", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to store thumbnail"})
		return
	}

	video, err := h.Videos.Update(ctx, catalog.UpdateVideoInput{
		ActorID:   actor,
		VideoID:   r.PathValue("id"),
		Thumbnail: &ref,
	})
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// TogglePublish handles POST /api/v1/videos/{id}/toggle-publish.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	published, err := h.Videos.TogglePublish(ctx, actor, r.PathValue("id"))
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]bool{"published": published})
}

// Delete handles DELETE /api/v1/videos/{id}.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := h.Videos.Delete(ctx, actor, r.PathValue("id")); err != nil {
		respondFault(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByOwner handles GET /api/v1/users/{id}/videos with optional query,
// sortBy, order, page and limit parameters.
func (h VideoHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	views, meta, err := h.Videos.List(ctx, catalog.ListVideosInput{
		OwnerID:    r.PathValue("id"),
		Query:      strings.TrimSpace(q.Get("query")),
		SortKey:    strings.TrimSpace(q.Get("sortBy")),
		Descending: q.Get("order") == "desc",
		Page:       pageFromQuery(r),
	})
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, videoPageResponse{Videos: views, Meta: meta})
}
