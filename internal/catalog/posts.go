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

// PostService manages short text posts.
type PostService struct {
	posts repositories.PostRepository

	NewID func() string
	Now   func() time.Time
}

// NewPostService constructs a PostService.
func NewPostService(posts repositories.PostRepository) *PostService {
	if posts == nil {
		panic("catalog: post repository must not be nil")
	}
	return &PostService{
		posts: posts,
		NewID: ids.New,
		Now:   utcNow,
	}
}

// Create stores a new post owned by the actor.
func (s *PostService) Create(ctx context.Context, actorID, content string) (models.Post, error) {
	if err := requireID("owner", actorID); err != nil {
		return models.Post{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Post{}, faults.InvalidInput("post content must not be empty")
	}

	now := s.Now()
	post := models.Post{
		ID:        s.NewID(),
		OwnerID:   actorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return models.Post{}, storeFault("create post", "post", err)
	}
	return post, nil
}

// Update rewrites a post's content. Only the author may update.
func (s *PostService) Update(ctx context.Context, actorID, postID, content string) (models.Post, error) {
	if err := requireID("post", postID); err != nil {
		return models.Post{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Post{}, faults.InvalidInput("post content must not be empty")
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return models.Post{}, storeFault("load post", "post", err)
	}
	if err := requireOwner(actorID, post.OwnerID, "post"); err != nil {
		return models.Post{}, err
	}

	post.Content = strings.TrimSpace(content)
	post.UpdatedAt = s.Now()
	if err := s.posts.Update(ctx, post); err != nil {
		return models.Post{}, storeFault("update post", "post", err)
	}
	return post, nil
}

// Delete removes a post and any likes anchored to it. Only the author may
// delete.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	if err := requireID("post", postID); err != nil {
		return err
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return storeFault("load post", "post", err)
	}
	if err := requireOwner(actorID, post.OwnerID, "post"); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return storeFault("delete post", "post", err)
	}
	return nil
}

// ListByOwner returns all of a user's posts, newest first.
func (s *PostService) ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	if err := requireID("owner", ownerID); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByOwner(ctx, pipeline.PostsByOwner(ownerID))
	if err != nil {
		return nil, storeFault("list posts", "post", err)
	}
	return posts, nil
}
