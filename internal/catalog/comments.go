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

// CommentService manages comments anchored to videos.
type CommentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository

	NewID func() string
	Now   func() time.Time
}

// NewCommentService constructs a CommentService.
func NewCommentService(comments repositories.CommentRepository, videos repositories.VideoRepository) *CommentService {
	if comments == nil || videos == nil {
		panic("catalog: comment service requires comment and video repositories")
	}
	return &CommentService{
		comments: comments,
		videos:   videos,
		NewID:    ids.New,
		Now:      utcNow,
	}
}

// Add attaches a new comment to a video. The video must exist.
func (s *CommentService) Add(ctx context.Context, actorID, videoID, content string) (models.Comment, error) {
	if err := requireID("video", videoID); err != nil {
		return models.Comment{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, faults.InvalidInput("comment content must not be empty")
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return models.Comment{}, storeFault("load video", "video", err)
	}

	now := s.Now()
	comment := models.Comment{
		ID:        s.NewID(),
		VideoID:   videoID,
		OwnerID:   actorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.Comment{}, storeFault("create comment", "comment", err)
	}
	return comment, nil
}

// Update rewrites a comment's content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, actorID, commentID, content string) (models.Comment, error) {
	if err := requireID("comment", commentID); err != nil {
		return models.Comment{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, faults.InvalidInput("comment content must not be empty")
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, storeFault("load comment", "comment", err)
	}
	if err := requireOwner(actorID, comment.OwnerID, "comment"); err != nil {
		return models.Comment{}, err
	}

	comment.Content = strings.TrimSpace(content)
	comment.UpdatedAt = s.Now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return models.Comment{}, storeFault("update comment", "comment", err)
	}
	return comment, nil
}

// Delete removes a comment and any likes anchored to it. Only the author may
// delete.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID string) error {
	if err := requireID("comment", commentID); err != nil {
		return err
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return storeFault("load comment", "comment", err)
	}
	if err := requireOwner(actorID, comment.OwnerID, "comment"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return storeFault("delete comment", "comment", err)
	}
	return nil
}

// List returns a page of a video's comments, newest first, authors hydrated.
func (s *CommentService) List(ctx context.Context, videoID string, page pipeline.Page) ([]models.CommentView, pipeline.Meta, error) {
	if err := requireID("video", videoID); err != nil {
		return nil, pipeline.Meta{}, err
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, pipeline.Meta{}, storeFault("load video", "video", err)
	}

	page = pipeline.NormalizePage(page)
	views, total, err := s.comments.ListForVideo(ctx, pipeline.CommentsForVideo(videoID), page)
	if err != nil {
		return nil, pipeline.Meta{}, storeFault("list comments", "comment", err)
	}
	return views, pipeline.NewMeta(total, page), nil
}
