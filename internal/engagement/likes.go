// Package engagement implements the relationship services: likes,
// subscriptions and the aggregated channel statistics.
package engagement

import (
	"context"
	"errors"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

func requireID(label, id string) error {
	if err := ids.Validate(id); err != nil {
		return faults.InvalidInput("%s id is not a valid identifier", label)
	}
	return nil
}

func storeFault(op, label string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return faults.NotFound("%s not found", label)
	case errors.Is(err, repositories.ErrConflict):
		return faults.Conflict("%s already exists", label)
	default:
		return faults.Store(op, err)
	}
}

// anchorLookup verifies that the entity a like targets exists. For video
// anchors it also reports the channel whose stats the like feeds into.
type anchorLookup func(ctx context.Context, id string) (channelID string, err error)

// StatsInvalidator drops cached channel totals after a mutation that
// changes them.
type StatsInvalidator interface {
	Invalidate(ownerID string)
}

// LikeService toggles like edges on videos, comments and posts.
type LikeService struct {
	likes   repositories.LikeRepository
	anchors map[models.LikeKind]anchorLookup

	// Stats, when set, is invalidated for the video owner after a video
	// like toggles.
	Stats StatsInvalidator

	NewID func() string
	Now   func() time.Time
}

// NewLikeService constructs a LikeService. The content repositories are used
// only to check that a like's anchor exists before toggling.
func NewLikeService(
	likes repositories.LikeRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
) *LikeService {
	if likes == nil || videos == nil || comments == nil || posts == nil {
		panic("engagement: like service requires all repositories")
	}
	return &LikeService{
		likes: likes,
		anchors: map[models.LikeKind]anchorLookup{
			models.LikeVideo: func(ctx context.Context, id string) (string, error) {
				video, err := videos.FindByID(ctx, id)
				if err != nil {
					return "", err
				}
				return video.OwnerID, nil
			},
			models.LikeComment: func(ctx context.Context, id string) (string, error) {
				_, err := comments.FindByID(ctx, id)
				return "", err
			},
			models.LikePost: func(ctx context.Context, id string) (string, error) {
				_, err := posts.FindByID(ctx, id)
				return "", err
			},
		},
		NewID: ids.New,
		Now:   utcNow,
	}
}

// Toggle flips the actor's like on the target: absent becomes present,
// present becomes absent. The returned state names the side that was applied.
// The underlying create and delete are single atomic statements, so
// concurrent toggles on the same pair settle on one edge at most.
func (s *LikeService) Toggle(ctx context.Context, actorID string, kind models.LikeKind, targetID string) (models.ToggleState, error) {
	if err := requireID("target", targetID); err != nil {
		return "", err
	}
	lookup, ok := s.anchors[kind]
	if !ok {
		return "", faults.InvalidInput("unknown like target kind %q", kind)
	}
	channelID, err := lookup(ctx, targetID)
	if err != nil {
		return "", storeFault("load like target", string(kind), err)
	}

	removed, err := s.likes.DeleteIfPresent(ctx, actorID, kind, targetID)
	if err != nil {
		return "", storeFault("remove like", "like", err)
	}
	if removed {
		s.invalidateStats(channelID)
		return models.ToggleRemoved, nil
	}

	// The create reports false when a concurrent toggle inserted the edge
	// between our delete and insert; either way the edge now exists.
	if _, err := s.likes.CreateIfAbsent(ctx, models.Like{
		ID:        s.NewID(),
		OwnerID:   actorID,
		Kind:      kind,
		TargetID:  targetID,
		CreatedAt: s.Now(),
	}); err != nil {
		return "", storeFault("create like", "like", err)
	}
	s.invalidateStats(channelID)
	return models.ToggleCreated, nil
}

func (s *LikeService) invalidateStats(channelID string) {
	if s.Stats != nil && channelID != "" {
		s.Stats.Invalidate(channelID)
	}
}

// Liked reports whether the actor currently likes the target.
func (s *LikeService) Liked(ctx context.Context, actorID string, kind models.LikeKind, targetID string) (bool, error) {
	if err := requireID("target", targetID); err != nil {
		return false, err
	}
	liked, err := s.likes.Exists(ctx, actorID, kind, targetID)
	if err != nil {
		return false, storeFault("check like", "like", err)
	}
	return liked, nil
}

// LikedVideos returns a page of the videos the actor has liked, most recent
// like first, owners hydrated.
func (s *LikeService) LikedVideos(ctx context.Context, actorID string, page pipeline.Page) ([]models.VideoView, pipeline.Meta, error) {
	if err := requireID("actor", actorID); err != nil {
		return nil, pipeline.Meta{}, err
	}
	page = pipeline.NormalizePage(page)
	views, total, err := s.likes.LikedVideos(ctx, pipeline.LikedVideos(actorID), page)
	if err != nil {
		return nil, pipeline.Meta{}, storeFault("list liked videos", "like", err)
	}
	return views, pipeline.NewMeta(total, page), nil
}

func utcNow() time.Time { return time.Now().UTC() }
