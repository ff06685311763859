package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"path"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/repositories"
)

// maxImageUpload bounds avatar and cover image uploads.
const maxImageUpload = 8 << 20

// UserHandler implements profile endpoints for the authenticated account.
type UserHandler struct {
	Users    UserStore
	Sessions SessionManager
	Media    MediaStore
}

// Me handles GET /api/v1/users/me.
func (h UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(ctx, actor)
	if err != nil {
		logging.FromContext(ctx).Error("load current user", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load account"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

// UpdateProfile handles PATCH /api/v1/users/me.
func (h UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FullName == nil && req.Email == nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "nothing to update"})
		return
	}

	user, err := h.Users.FindByID(ctx, actor)
	if err != nil {
		logger.Error("load current user", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load account"})
		return
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "full name must not be empty"})
			return
		}
		user.FullName = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid email address"})
			return
		}
		user.Email = email
	}

	if err := h.Users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "email already taken"})
			return
		}
		logger.Error("update profile", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update account"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles POST /api/v1/users/me/password.
func (h UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	actor, ok := actorID(w, r, h.Sessions)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid password payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.NewPassword) < 8 {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
		return
	}

	user, err := h.Users.FindByID(ctx, actor)
	if err != nil {
		logger.Error("load current user", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load account"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		logger.Warn("password change rejected", "userId", actor)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash new password", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to secure password"})
		return
	}

	user.Password = string(hashed)
	if err := h.Users.Update(ctx, user); err != nil {
		logger.Error("store new password", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update account"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "password changed"})
}

// UploadAvatar handles POST /api/v1/users/me/avatar.
func (h UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "avatars", func(user *models.User, ref models.MediaRef) { user.Avatar = ref })
}

// UploadCover handles POST /api/v1/users/me/cover.
func (h UserHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "covers", func(user *models.User, ref models.MediaRef) { user.CoverImage = ref })
}

func (h UserHandler) uploadImage(w http.ResponseWriter, r *http.Request, prefix string, assign func(*models.User, models.MediaRef)) {
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

	user, err := h.Users.FindByID(ctx, actor)
	if err != nil {
		logger.Error("load current user", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load account"})
		return
	}

	key := path.Join(prefix, actor, ids.New()+path.Ext(header.Filename))
	ref, err := h.Media.Save(ctx, key, file)
	if err != nil {
		logger.Error("store image", "key", key, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to store image"})
		return
	}

	assign(&user, ref)

	if err := h.Users.Update(ctx, user); err != nil {
		logger.Error("update user image", "userId", actor, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update account"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, newUserResponse(user))
}
