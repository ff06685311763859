package repositories

import (
	"context"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// SubscriptionRepository manages subscription edges with the same atomic
// create/delete primitives as likes, keyed on (subscriber, channel).
type SubscriptionRepository interface {
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	CreateIfAbsent(ctx context.Context, sub models.Subscription) (bool, error)
	DeleteIfPresent(ctx context.Context, subscriberID, channelID string) (bool, error)
	Subscribers(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error)
	Channels(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error)
}
