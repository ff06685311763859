package repositories

import (
	"context"
	"fmt"

	"github.com/streamhive/backend/internal/db"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

// PostgresPostRepository provides PostgreSQL-backed persistence for posts.
type PostgresPostRepository struct {
	pool db.Pool
}

// NewPostgresPostRepository constructs a post repository backed by PostgreSQL.
func NewPostgresPostRepository(pool db.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// Create persists a new post.
func (r *PostgresPostRepository) Create(ctx context.Context, post models.Post) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO posts (id, owner_id, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `, post.ID, post.OwnerID, post.Content, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != nil {
			return translated
		}
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

// FindByID fetches a post by identifier.
func (r *PostgresPostRepository) FindByID(ctx context.Context, id string) (models.Post, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Post{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, owner_id, content, created_at, updated_at
        FROM posts
        WHERE id = $1
    `, id)

	var p models.Post
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, fmt.Errorf("scan post: %w", err)
	}

	return p, nil
}

// Update replaces a post's content.
func (r *PostgresPostRepository) Update(ctx context.Context, post models.Post) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE posts
        SET content = $2, updated_at = $3
        WHERE id = $1
    `, post.ID, post.Content, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a post and any likes anchored to it.
func (r *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        DELETE FROM likes WHERE target_kind = 'post' AND target_id = $1
    `, id); err != nil {
		return fmt.Errorf("delete post likes: %w", err)
	}

	tag, err := conn.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByOwner executes a post stage plan without a window.
func (r *PostgresPostRepository) ListByOwner(ctx context.Context, stages []pipeline.Stage) ([]models.Post, error) {
	clauses, err := compileStages(stages, postColumns)
	if err != nil {
		return nil, fmt.Errorf("compile post plan: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	querySQL := fmt.Sprintf(`
        SELECT p.id, p.owner_id, p.content, p.created_at, p.updated_at
        FROM posts p
        %s %s
    `, clauses.whereSQL(), clauses.orderSQL())

	rows, err := conn.Query(ctx, querySQL, clauses.args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

var _ PostRepository = (*PostgresPostRepository)(nil)
