package handlers

import (
	"context"
	"io"

	"github.com/streamhive/backend/internal/catalog"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// UserStore captures the persistence operations required by the account
// handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByLogin(ctx context.Context, login string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

// SessionManager issues, validates and retires authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Validate(ctx context.Context, accessToken string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Revoke(ctx context.Context, refreshToken string)
}

// VideoCatalog is the video lifecycle surface the handlers drive.
type VideoCatalog interface {
	Publish(ctx context.Context, in catalog.PublishVideoInput) (models.Video, error)
	Get(ctx context.Context, videoID string) (models.VideoView, error)
	Update(ctx context.Context, in catalog.UpdateVideoInput) (models.Video, error)
	TogglePublish(ctx context.Context, actorID, videoID string) (bool, error)
	Delete(ctx context.Context, actorID, videoID string) error
	List(ctx context.Context, in catalog.ListVideosInput) ([]models.VideoView, pipeline.Meta, error)
}

// CommentCatalog is the comment surface the handlers drive.
type CommentCatalog interface {
	Add(ctx context.Context, actorID, videoID, content string) (models.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (models.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
	List(ctx context.Context, videoID string, page pipeline.Page) ([]models.CommentView, pipeline.Meta, error)
}

// PostCatalog is the post surface the handlers drive.
type PostCatalog interface {
	Create(ctx context.Context, actorID, content string) (models.Post, error)
	Update(ctx context.Context, actorID, postID, content string) (models.Post, error)
	Delete(ctx context.Context, actorID, postID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error)
}

// PlaylistCatalog is the playlist surface the handlers drive.
type PlaylistCatalog interface {
	Create(ctx context.Context, actorID, name, description string) (models.Playlist, error)
	Update(ctx context.Context, in catalog.UpdatePlaylistInput) (models.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID string) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistSummary, error)
	Get(ctx context.Context, playlistID string) (models.PlaylistView, error)
}

// LikeEngine toggles and reads like edges.
type LikeEngine interface {
	Toggle(ctx context.Context, actorID string, kind models.LikeKind, targetID string) (models.ToggleState, error)
	Liked(ctx context.Context, actorID string, kind models.LikeKind, targetID string) (bool, error)
	LikedVideos(ctx context.Context, actorID string, page pipeline.Page) ([]models.VideoView, pipeline.Meta, error)
}

// SubscriptionEngine toggles and reads subscription edges.
type SubscriptionEngine interface {
	Toggle(ctx context.Context, actorID, channelID string) (models.ToggleState, error)
	Subscribed(ctx context.Context, actorID, channelID string) (bool, error)
	Subscribers(ctx context.Context, channelID string, page pipeline.Page) ([]models.OwnerSummary, pipeline.Meta, error)
	Channels(ctx context.Context, subscriberID string, page pipeline.Page) ([]models.OwnerSummary, pipeline.Meta, error)
}

// StatsProvider serves aggregated channel totals.
type StatsProvider interface {
	ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error)
}

// MediaStore persists uploaded media objects.
type MediaStore interface {
	Save(ctx context.Context, name string, r io.Reader) (models.MediaRef, error)
}
