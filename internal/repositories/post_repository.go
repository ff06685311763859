package repositories

import (
	"context"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PostRepository exposes data access for short text posts.
type PostRepository interface {
	Create(ctx context.Context, post models.Post) error
	FindByID(ctx context.Context, id string) (models.Post, error)
	Update(ctx context.Context, post models.Post) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, stages []pipeline.Stage) ([]models.Post, error)
}
