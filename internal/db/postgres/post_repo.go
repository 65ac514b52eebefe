package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Feedline/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, content, attachment_key, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.AttachmentKey, post.OwnerID,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	post := &posts.Post{}
	query := `SELECT id, title, content, attachment_key, owner_id, created_at, updated_at FROM posts WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.AttachmentKey, &post.OwnerID,
			&post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// Update overwrites the mutable fields of a post
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, attachment_key = $4, updated_at = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.AttachmentKey, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check post update: %w", err)
	}
	if rows == 0 {
		return posts.ErrPostNotFound
	}

	return nil
}

// Delete removes a post by ID
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check post delete: %w", err)
	}
	if rows == 0 {
		return posts.ErrPostNotFound
	}

	return nil
}

// Count returns the number of live posts
func (r *postgresPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPage returns one feed page, newest first with ID as tiebreak so
// pagination stays stable across pages, and resolves each author in the
// same query. A missing owner row yields NULL author columns, never a
// failed page.
func (r *postgresPostRepo) ListPage(ctx context.Context, limit, offset int) ([]*posts.PostView, error) {
	query := `
		SELECT p.id, p.title, p.content, p.attachment_key, p.owner_id, p.created_at, p.updated_at,
		       u.id, u.name
		FROM posts p
		LEFT JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var views []*posts.PostView
	for rows.Next() {
		view := &posts.PostView{}
		var authorID, authorName sql.NullString
		err := rows.Scan(
			&view.ID, &view.Title, &view.Content, &view.AttachmentKey, &view.OwnerID,
			&view.CreatedAt, &view.UpdatedAt,
			&authorID, &authorName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		view.Author = posts.Author{ID: authorID.String, Name: authorName.String}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return views, nil
}
