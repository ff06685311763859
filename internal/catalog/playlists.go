package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

// PlaylistService manages playlists and their video memberships.
type PlaylistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository

	NewID func() string
	Now   func() time.Time
}

// NewPlaylistService constructs a PlaylistService.
func NewPlaylistService(playlists repositories.PlaylistRepository, videos repositories.VideoRepository) *PlaylistService {
	if playlists == nil || videos == nil {
		panic("catalog: playlist service requires playlist and video repositories")
	}
	return &PlaylistService{
		playlists: playlists,
		videos:    videos,
		NewID:     ids.New,
		Now:       utcNow,
	}
}

// Create stores a new, empty playlist owned by the actor.
func (s *PlaylistService) Create(ctx context.Context, actorID, name, description string) (models.Playlist, error) {
	if err := requireID("owner", actorID); err != nil {
		return models.Playlist{}, err
	}
	if strings.TrimSpace(name) == "" {
		return models.Playlist{}, faults.InvalidInput("playlist name must not be empty")
	}

	now := s.Now()
	playlist := models.Playlist{
		ID:          s.NewID(),
		OwnerID:     actorID,
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return models.Playlist{}, storeFault("create playlist", "playlist", err)
	}
	return playlist, nil
}

// UpdatePlaylistInput names the mutable playlist fields. Nil pointers leave
// the current value untouched.
type UpdatePlaylistInput struct {
	ActorID     string
	PlaylistID  string
	Name        *string
	Description *string
}

// Update edits a playlist's name or description. Only the owner may update.
func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (models.Playlist, error) {
	if err := requireID("playlist", in.PlaylistID); err != nil {
		return models.Playlist{}, err
	}
	playlist, err := s.playlists.FindByID(ctx, in.PlaylistID)
	if err != nil {
		return models.Playlist{}, storeFault("load playlist", "playlist", err)
	}
	if err := requireOwner(in.ActorID, playlist.OwnerID, "playlist"); err != nil {
		return models.Playlist{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return models.Playlist{}, faults.InvalidInput("playlist name must not be empty")
		}
		playlist.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		playlist.Description = *in.Description
	}
	playlist.UpdatedAt = s.Now()

	if err := s.playlists.Update(ctx, playlist); err != nil {
		return models.Playlist{}, storeFault("update playlist", "playlist", err)
	}
	return playlist, nil
}

// Delete removes a playlist and its memberships. Member videos are untouched.
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID string) error {
	if err := requireID("playlist", playlistID); err != nil {
		return err
	}
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return storeFault("load playlist", "playlist", err)
	}
	if err := requireOwner(actorID, playlist.OwnerID, "playlist"); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return storeFault("delete playlist", "playlist", err)
	}
	return nil
}

// AddVideo adds a video to a playlist. Adding a video twice is a conflict.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) error {
	if err := requireID("playlist", playlistID); err != nil {
		return err
	}
	if err := requireID("video", videoID); err != nil {
		return err
	}
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return storeFault("load playlist", "playlist", err)
	}
	if err := requireOwner(actorID, playlist.OwnerID, "playlist"); err != nil {
		return err
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return storeFault("load video", "video", err)
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID, s.Now()); err != nil {
		return storeFault("add playlist video", "playlist membership", err)
	}
	return nil
}

// RemoveVideo removes a video from a playlist. Removing a non-member video
// reports not found.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) error {
	if err := requireID("playlist", playlistID); err != nil {
		return err
	}
	if err := requireID("video", videoID); err != nil {
		return err
	}
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return storeFault("load playlist", "playlist", err)
	}
	if err := requireOwner(actorID, playlist.OwnerID, "playlist"); err != nil {
		return err
	}
	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return storeFault("remove playlist video", "playlist membership", err)
	}
	return nil
}

// ListByOwner returns a user's playlists with derived display thumbnails.
func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistSummary, error) {
	if err := requireID("owner", ownerID); err != nil {
		return nil, err
	}
	summaries, err := s.playlists.ListByOwner(ctx, pipeline.PlaylistsByOwner(ownerID))
	if err != nil {
		return nil, storeFault("list playlists", "playlist", err)
	}
	return summaries, nil
}

// Get returns one playlist with its member videos hydrated in insertion
// order, each carrying its hydrated owner.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (models.PlaylistView, error) {
	if err := requireID("playlist", playlistID); err != nil {
		return models.PlaylistView{}, err
	}
	view, err := s.playlists.FindView(ctx, playlistID)
	if err != nil {
		return models.PlaylistView{}, storeFault("load playlist", "playlist", err)
	}
	return view, nil
}
