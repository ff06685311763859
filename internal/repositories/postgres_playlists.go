package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PostgresPlaylistRepository provides PostgreSQL-backed persistence for
// playlists and their video memberships.
type PostgresPlaylistRepository struct {
	pool db.Pool
}

// NewPostgresPlaylistRepository constructs a playlist repository backed by
// PostgreSQL.
func NewPostgresPlaylistRepository(pool db.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

// Create persists a new playlist.
func (r *PostgresPlaylistRepository) Create(ctx context.Context, playlist models.Playlist) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
		playlist.CreatedAt, playlist.UpdatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("insert playlist: %w", err)
	}

	return nil
}

// FindByID fetches a bare playlist record.
func (r *PostgresPlaylistRepository) FindByID(ctx context.Context, id string) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, owner_id, name, description, created_at, updated_at
        FROM playlists
        WHERE id = $1
    `, id)

	var p models.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return models.Playlist{}, ErrNotFound
		}
		return models.Playlist{}, fmt.Errorf("scan playlist: %w", err)
	}

	return p, nil
}

// Update replaces a playlist's name and description.
func (r *PostgresPlaylistRepository) Update(ctx context.Context, playlist models.Playlist) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE playlists
        SET name = $2, description = $3, updated_at = $4
        WHERE id = $1
    `, playlist.ID, playlist.Name, playlist.Description, playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a playlist and its memberships.
func (r *PostgresPlaylistRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        DELETE FROM playlist_videos WHERE playlist_id = $1
    `, id); err != nil {
		return fmt.Errorf("delete playlist memberships: %w", err)
	}

	tag, err := conn.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// AddVideo records a playlist membership. Duplicate membership reports
// ErrConflict; a vanished playlist or video reports ErrNotFound.
func (r *PostgresPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string, addedAt time.Time) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO playlist_videos (playlist_id, video_id, added_at)
        VALUES ($1, $2, $3)
    `, playlistID, videoID, addedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("insert playlist membership: %w", err)
	}

	return nil
}

// RemoveVideo drops a playlist membership.
func (r *PostgresPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM playlist_videos
        WHERE playlist_id = $1 AND video_id = $2
    `, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("delete playlist membership: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByOwner executes the playlist summary stage plan. The derived display
// thumbnail comes from the most recently created member video via a lateral
// join; playlists without members yield a null thumbnail.
func (r *PostgresPlaylistRepository) ListByOwner(ctx context.Context, stages []pipeline.Stage) ([]models.PlaylistSummary, error) {
	clauses, err := compileStages(stages, playlistColumns)
	if err != nil {
		return nil, fmt.Errorf("compile playlist plan: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	querySQL := fmt.Sprintf(`
        SELECT p.id, p.name, p.description, t.thumbnail_key, t.thumbnail_url
        FROM playlists p
        LEFT JOIN LATERAL (
            SELECT v.thumbnail_key, v.thumbnail_url
            FROM playlist_videos pv
            JOIN videos v ON v.id = pv.video_id
            WHERE pv.playlist_id = p.id
            ORDER BY v.created_at DESC
            LIMIT 1
        ) t ON true
        %s %s
    `, clauses.whereSQL(), clauses.orderSQL())

	rows, err := conn.Query(ctx, querySQL, clauses.args...)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	var summaries []models.PlaylistSummary
	for rows.Next() {
		var (
			s        models.PlaylistSummary
			thumbKey *string
			thumbURL *string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &thumbKey, &thumbURL); err != nil {
			return nil, fmt.Errorf("scan playlist summary: %w", err)
		}
		if thumbKey != nil && thumbURL != nil {
			s.Thumbnail = &models.MediaRef{Key: *thumbKey, URL: *thumbURL}
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	return summaries, nil
}

// FindView fetches a playlist with member videos hydrated in insertion order,
// each carrying its hydrated owner.
func (r *PostgresPlaylistRepository) FindView(ctx context.Context, id string) (models.PlaylistView, error) {
	playlist, err := r.FindByID(ctx, id)
	if err != nil {
		return models.PlaylistView{}, err
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.PlaylistView{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+videoColumnsSQL+`, `+ownerSummarySQL+`
        FROM playlist_videos pv
        JOIN videos v ON v.id = pv.video_id
        JOIN users u ON u.id = v.owner_id
        WHERE pv.playlist_id = $1
        ORDER BY pv.added_at
    `, id)
	if err != nil {
		return models.PlaylistView{}, fmt.Errorf("query playlist videos: %w", err)
	}
	defer rows.Close()

	view := models.PlaylistView{Playlist: playlist}
	for rows.Next() {
		video, err := scanVideoView(rows)
		if err != nil {
			return models.PlaylistView{}, err
		}
		view.Videos = append(view.Videos, video)
	}

	if err := rows.Err(); err != nil {
		return models.PlaylistView{}, fmt.Errorf("iterate playlist videos: %w", err)
	}

	return view, nil
}

var _ PlaylistRepository = (*PostgresPlaylistRepository)(nil)
