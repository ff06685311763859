package repositories

import (
	"context"
	"fmt"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
)

// PostgresStatsRepository derives channel statistics in a single aggregate
// query over the content and relationship tables.
type PostgresStatsRepository struct {
	pool db.Pool
}

// NewPostgresStatsRepository constructs a stats repository backed by PostgreSQL.
func NewPostgresStatsRepository(pool db.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// ChannelStats groups the owner's videos and counts the related edges. An
// owner with no videos yields all-zero totals rather than an error.
func (r *PostgresStatsRepository) ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM videos v WHERE v.owner_id = $1),
            (SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.owner_id = $1),
            (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1),
            (SELECT COUNT(*)
             FROM likes l
             JOIN videos v ON l.target_kind = 'video' AND v.id = l.target_id
             WHERE v.owner_id = $1)
    `, ownerID)

	var stats models.ChannelStats
	if err := row.Scan(&stats.VideoCount, &stats.ViewTotal, &stats.SubscriberCount, &stats.LikeCount); err != nil {
		return models.ChannelStats{}, fmt.Errorf("scan channel stats: %w", err)
	}

	return stats, nil
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)
