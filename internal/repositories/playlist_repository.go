package repositories

import (
	"context"
	"time"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PlaylistRepository exposes data access for playlists and their memberships.
// AddVideo reports ErrConflict for duplicate membership; RemoveVideo reports
// ErrNotFound when the video is not a member.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string, addedAt time.Time) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	ListByOwner(ctx context.Context, stages []pipeline.Stage) ([]models.PlaylistSummary, error)
	FindView(ctx context.Context, id string) (models.PlaylistView, error)
}
