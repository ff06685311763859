package repositories

import (
	"context"
	"fmt"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for
// subscription edges. The (subscriber_id, channel_id) uniqueness constraint
// carries the at-most-one-edge invariant, and a CHECK constraint backstops
// the self-subscription rule enforced by the engine.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository
// backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Exists reports whether the edge is present.
func (r *PostgresSubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM subscriptions
            WHERE subscriber_id = $1 AND channel_id = $2
        )
    `, subscriberID, channelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}

	return exists, nil
}

// CreateIfAbsent inserts the edge unless it already exists.
func (r *PostgresSubscriptionRepository) CreateIfAbsent(ctx context.Context, sub models.Subscription) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (subscriber_id, channel_id) DO NOTHING
    `, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return false, translated
		}
		return false, fmt.Errorf("insert subscription: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteIfPresent removes the edge if it exists.
func (r *PostgresSubscriptionRepository) DeleteIfPresent(ctx context.Context, subscriberID, channelID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM subscriptions
        WHERE subscriber_id = $1 AND channel_id = $2
    `, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Subscribers executes the subscriber-list stage plan for a channel.
func (r *PostgresSubscriptionRepository) Subscribers(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error) {
	return r.listUsers(ctx, stages, page, "s.subscriber_id")
}

// Channels executes the subscribed-channels stage plan for a subscriber.
func (r *PostgresSubscriptionRepository) Channels(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error) {
	return r.listUsers(ctx, stages, page, "s.channel_id")
}

func (r *PostgresSubscriptionRepository) listUsers(ctx context.Context, stages []pipeline.Stage, page pipeline.Page, joinColumn string) ([]models.OwnerSummary, int, error) {
	clauses, err := compileStages(stages, subscriptionColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("compile subscription plan: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM subscriptions s %s`, clauses.whereSQL())
	if err := conn.QueryRow(ctx, countSQL, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	querySQL := fmt.Sprintf(`
        SELECT `+ownerSummarySQL+`
        FROM subscriptions s
        JOIN users u ON u.id = %s
        %s %s %s
    `, joinColumn, clauses.whereSQL(), clauses.orderSQL(), clauses.windowSQL(page.Limit, page.Offset()))

	rows, err := conn.Query(ctx, querySQL, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var users []models.OwnerSummary
	for rows.Next() {
		var u models.OwnerSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Avatar.Key, &u.Avatar.URL); err != nil {
			return nil, 0, fmt.Errorf("scan subscription user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return users, total, nil
}

var _ SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)
