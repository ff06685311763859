package repositories

import (
	"context"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// VideoRepository exposes data access for videos, including the aggregated
// listing executed from a pipeline stage plan.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindView(ctx context.Context, id string) (models.VideoView, error)
	Update(ctx context.Context, video models.Video) error
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error)
}
