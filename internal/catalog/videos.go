package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/logging"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

// MediaReclaimer receives storage keys of media objects that are no longer
// referenced and removes them in the background.
type MediaReclaimer interface {
	Enqueue(key string)
}

// VideoService owns the video lifecycle from publication to deletion.
type VideoService struct {
	videos  repositories.VideoRepository
	reclaim MediaReclaimer

	// NewID and Now are overridable for tests.
	NewID func() string
	Now   func() time.Time
}

// NewVideoService constructs a VideoService. The reclaimer may be nil, in
// which case orphaned media objects are left in place.
func NewVideoService(videos repositories.VideoRepository, reclaim MediaReclaimer) *VideoService {
	if videos == nil {
		panic("catalog: video repository must not be nil")
	}
	return &VideoService{
		videos:  videos,
		reclaim: reclaim,
		NewID:   ids.New,
		Now:     utcNow,
	}
}

// PublishVideoInput carries everything needed to publish a new video.
type PublishVideoInput struct {
	OwnerID     string
	Title       string
	Description string
	File        models.MediaRef
	Thumbnail   models.MediaRef
	Duration    float64
}

// Publish stores a new video owned by the given user. New videos start out
// published.
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (models.Video, error) {
	if err := requireID("owner", in.OwnerID); err != nil {
		return models.Video{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Video{}, faults.InvalidInput("title must not be empty")
	}
	if in.File.Zero() {
		return models.Video{}, faults.InvalidInput("video file is required")
	}
	if in.Duration < 0 {
		return models.Video{}, faults.InvalidInput("duration must not be negative")
	}

	now := s.Now()
	video := models.Video{
		ID:          s.NewID(),
		OwnerID:     in.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		File:        in.File,
		Thumbnail:   in.Thumbnail,
		Duration:    in.Duration,
		Published:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return models.Video{}, storeFault("create video", "video", err)
	}
	return video, nil
}

// Get returns one video with its owner hydrated and registers a view.
func (s *VideoService) Get(ctx context.Context, videoID string) (models.VideoView, error) {
	if err := requireID("video", videoID); err != nil {
		return models.VideoView{}, err
	}
	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return models.VideoView{}, storeFault("register view", "video", err)
	}
	view, err := s.videos.FindView(ctx, videoID)
	if err != nil {
		return models.VideoView{}, storeFault("load video", "video", err)
	}
	return view, nil
}

// UpdateVideoInput names the mutable video fields. Nil pointers leave the
// current value untouched.
type UpdateVideoInput struct {
	ActorID     string
	VideoID     string
	Title       *string
	Description *string
	Thumbnail   *models.MediaRef
}

// Update edits a video's title, description or thumbnail. Only the owner may
// update, and ownership itself never changes.
func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (models.Video, error) {
	if err := requireID("video", in.VideoID); err != nil {
		return models.Video{}, err
	}
	video, err := s.videos.FindByID(ctx, in.VideoID)
	if err != nil {
		return models.Video{}, storeFault("load video", "video", err)
	}
	if err := requireOwner(in.ActorID, video.OwnerID, "video"); err != nil {
		return models.Video{}, err
	}

	var oldThumb string
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return models.Video{}, faults.InvalidInput("title must not be empty")
		}
		video.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		video.Description = *in.Description
	}
	if in.Thumbnail != nil && in.Thumbnail.Key != video.Thumbnail.Key {
		oldThumb = video.Thumbnail.Key
		video.Thumbnail = *in.Thumbnail
	}
	video.UpdatedAt = s.Now()

	if err := s.videos.Update(ctx, video); err != nil {
		return models.Video{}, storeFault("update video", "video", err)
	}
	if oldThumb != "" && s.reclaim != nil {
		s.reclaim.Enqueue(oldThumb)
	}
	return video, nil
}

// TogglePublish flips a video's publish flag and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID string) (bool, error) {
	if err := requireID("video", videoID); err != nil {
		return false, err
	}
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return false, storeFault("load video", "video", err)
	}
	if err := requireOwner(actorID, video.OwnerID, "video"); err != nil {
		return false, err
	}

	next := !video.Published
	if err := s.videos.SetPublished(ctx, videoID, next); err != nil {
		return false, storeFault("toggle publish", "video", err)
	}
	return next, nil
}

// Delete removes a video and everything anchored to it: its likes, its
// comments and their likes, and its playlist memberships. The media objects
// are handed to the reclaimer once the row is gone.
func (s *VideoService) Delete(ctx context.Context, actorID, videoID string) error {
	if err := requireID("video", videoID); err != nil {
		return err
	}
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return storeFault("load video", "video", err)
	}
	if err := requireOwner(actorID, video.OwnerID, "video"); err != nil {
		return err
	}

	ctx, span := logging.StartSpan(ctx, "video.delete")
	defer span.End()

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return storeFault("delete video", "video", err)
	}
	if s.reclaim != nil {
		if video.File.Key != "" {
			s.reclaim.Enqueue(video.File.Key)
		}
		if video.Thumbnail.Key != "" {
			s.reclaim.Enqueue(video.Thumbnail.Key)
		}
	}
	return nil
}

// sortKeys whitelists the fields a listing may be ordered by.
var sortKeys = map[string]bool{
	pipeline.FieldCreatedAt: true,
	pipeline.FieldViews:     true,
	pipeline.FieldDuration:  true,
	pipeline.FieldTitle:     true,
}

// ListVideosInput parameterizes the owner-scoped video listing.
type ListVideosInput struct {
	OwnerID    string
	Query      string
	SortKey    string
	Descending bool
	Page       pipeline.Page
}

// List returns a page of an owner's videos, optionally narrowed by a
// free-text query and ordered by a whitelisted sort key.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) ([]models.VideoView, pipeline.Meta, error) {
	if err := requireID("owner", in.OwnerID); err != nil {
		return nil, pipeline.Meta{}, err
	}
	if in.SortKey != "" && !sortKeys[in.SortKey] {
		return nil, pipeline.Meta{}, faults.InvalidInput("cannot sort by %q", in.SortKey)
	}

	page := pipeline.NormalizePage(in.Page)
	stages := pipeline.VideosByOwner(in.OwnerID, in.Query, in.SortKey, in.Descending)
	views, total, err := s.videos.List(ctx, stages, page)
	if err != nil {
		return nil, pipeline.Meta{}, storeFault("list videos", "video", err)
	}
	return views, pipeline.NewMeta(total, page), nil
}
