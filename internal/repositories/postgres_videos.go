package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

const videoColumnsSQL = `v.id, v.owner_id, v.title, v.description,
        v.file_key, v.file_url, v.thumbnail_key, v.thumbnail_url,
        v.duration, v.views, v.is_published, v.created_at, v.updated_at`

const ownerSummarySQL = `u.id, u.username, u.full_name, u.avatar_key, u.avatar_url`

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// Create stores a new video record.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, owner_id, title, description, file_key, file_url,
                thumbnail_key, thumbnail_url, duration, views, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `, video.ID, video.OwnerID, video.Title, video.Description,
		video.File.Key, video.File.URL, video.Thumbnail.Key, video.Thumbnail.URL,
		video.Duration, video.Views, video.Published, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("insert video: %w", err)
	}

	return nil
}

// FindByID fetches a bare video record.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+videoColumnsSQL+`
        FROM videos v
        WHERE v.id = $1
    `, id)

	video, err := scanVideo(row)
	if err != nil {
		return models.Video{}, err
	}
	return video, nil
}

// FindView fetches a video with its owner hydrated.
func (r *PostgresVideoRepository) FindView(ctx context.Context, id string) (models.VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.VideoView{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+videoColumnsSQL+`, `+ownerSummarySQL+`
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        WHERE v.id = $1
    `, id)

	return scanVideoView(row)
}

// Update modifies a video's mutable fields. The owner column is never touched.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, description = $3, thumbnail_key = $4, thumbnail_url = $5, updated_at = $6
        WHERE id = $1
    `, video.ID, video.Title, video.Description,
		video.Thumbnail.Key, video.Thumbnail.URL, video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SetPublished flips the publication flag.
func (r *PostgresVideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET is_published = $2, updated_at = now()
        WHERE id = $1
    `, id, published)
	if err != nil {
		return fmt.Errorf("update video publication: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementViews bumps the view counter by one.
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET views = views + 1
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("increment video views: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a video together with its dependents: likes on the video,
// likes on its comments, the comments themselves, and any playlist
// memberships. The cascade runs in one transaction so a failure leaves the
// graph untouched.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin video delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	steps := []struct {
		name string
		sql  string
	}{
		{"delete comment likes", `DELETE FROM likes
            WHERE target_kind = 'comment'
              AND target_id IN (SELECT id FROM comments WHERE video_id = $1)`},
		{"delete video likes", `DELETE FROM likes
            WHERE target_kind = 'video' AND target_id = $1`},
		{"delete comments", `DELETE FROM comments WHERE video_id = $1`},
		{"delete playlist memberships", `DELETE FROM playlist_videos WHERE video_id = $1`},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.sql, id); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit video delete: %w", err)
	}

	return nil
}

// List executes a video stage plan over the given window, returning the
// hydrated page and the total count under the same predicate.
func (r *PostgresVideoRepository) List(ctx context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error) {
	clauses, err := compileStages(stages, videoColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("compile video plan: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM videos v %s`, clauses.whereSQL())
	if err := conn.QueryRow(ctx, countSQL, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	querySQL := fmt.Sprintf(`
        SELECT `+videoColumnsSQL+`, `+ownerSummarySQL+`
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        %s %s %s
    `, clauses.whereSQL(), clauses.orderSQL(), clauses.windowSQL(page.Limit, page.Offset()))

	rows, err := conn.Query(ctx, querySQL, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query videos: %w", err)
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
		return nil, 0, fmt.Errorf("iterate videos: %w", err)
	}

	return views, total, nil
}

func scanVideo(row rowScanner) (models.Video, error) {
	var v models.Video
	err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description,
		&v.File.Key, &v.File.URL, &v.Thumbnail.Key, &v.Thumbnail.URL,
		&v.Duration, &v.Views, &v.Published, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("scan video: %w", err)
	}
	return v, nil
}

func scanVideoView(row rowScanner) (models.VideoView, error) {
	var view models.VideoView
	err := row.Scan(&view.ID, &view.OwnerID, &view.Title, &view.Description,
		&view.File.Key, &view.File.URL, &view.Thumbnail.Key, &view.Thumbnail.URL,
		&view.Duration, &view.Views, &view.Published, &view.CreatedAt, &view.UpdatedAt,
		&view.Owner.ID, &view.Owner.Username, &view.Owner.FullName,
		&view.Owner.Avatar.Key, &view.Owner.Avatar.URL)
	if err != nil {
		if isNoRows(err) {
			return models.VideoView{}, ErrNotFound
		}
		return models.VideoView{}, fmt.Errorf("scan video view: %w", err)
	}
	return view, nil
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
