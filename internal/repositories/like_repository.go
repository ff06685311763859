package repositories

import (
	"context"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// LikeRepository manages like edges. CreateIfAbsent and DeleteIfPresent are
// single atomic statements scoped to the (owner, kind, target) uniqueness
// key, so concurrent toggles on the same pair can never produce two edges.
type LikeRepository interface {
	Exists(ctx context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error)
	CreateIfAbsent(ctx context.Context, like models.Like) (bool, error)
	DeleteIfPresent(ctx context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error)
	LikedVideos(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error)
}
