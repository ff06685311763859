package repositories

import (
	"context"
	"fmt"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for like
// edges. The uniqueness constraint on (owner_id, target_kind, target_id)
// carries the at-most-one-edge invariant; both toggle primitives are single
// statements, so concurrent toggles cannot duplicate an edge.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Exists reports whether the edge is present.
func (r *PostgresLikeRepository) Exists(ctx context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM likes
            WHERE owner_id = $1 AND target_kind = $2 AND target_id = $3
        )
    `, ownerID, string(kind), targetID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}

	return exists, nil
}

// CreateIfAbsent inserts the edge unless it already exists. Returns whether a
// row was inserted.
func (r *PostgresLikeRepository) CreateIfAbsent(ctx context.Context, like models.Like) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO likes (id, owner_id, target_kind, target_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (owner_id, target_kind, target_id) DO NOTHING
    `, like.ID, like.OwnerID, string(like.Kind), like.TargetID, like.CreatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return false, translated
		}
		return false, fmt.Errorf("insert like: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteIfPresent removes the edge if it exists. Returns whether a row was
// removed.
func (r *PostgresLikeRepository) DeleteIfPresent(ctx context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM likes
        WHERE owner_id = $1 AND target_kind = $2 AND target_id = $3
    `, ownerID, string(kind), targetID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// LikedVideos executes the liked-videos stage plan: like edges matched on the
// actor, hydrated with the video record and the video's owner.
func (r *PostgresLikeRepository) LikedVideos(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error) {
	clauses, err := compileStages(stages, likeColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("compile liked-videos plan: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	fromSQL := `
        FROM likes l
        JOIN videos v ON l.target_kind = 'video' AND v.id = l.target_id
        JOIN users u ON u.id = v.owner_id
    `

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) %s %s`, fromSQL, clauses.whereSQL())
	if err := conn.QueryRow(ctx, countSQL, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count liked videos: %w", err)
	}

	querySQL := fmt.Sprintf(`
        SELECT `+videoColumnsSQL+`, `+ownerSummarySQL+`
        %s %s %s %s
    `, fromSQL, clauses.whereSQL(), clauses.orderSQL(), clauses.windowSQL(page.Limit, page.Offset()))

	rows, err := conn.Query(ctx, querySQL, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	var views []models.VideoView
	for rows.Next() {
		view, err := scanVideoView(rows)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate liked videos: %w", err)
	}

	return views, total, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
