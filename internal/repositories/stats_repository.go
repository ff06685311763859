package repositories

import (
	"context"

	"github.com/streamhive/backend/internal/models"
)

// StatsRepository derives per-owner channel totals from the content and
// relationship stores.
type StatsRepository interface {
	ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error)
}
