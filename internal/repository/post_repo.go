package repository

import (
	"context"
	"errors"
	"fmt"

	"community_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// PostRepository defines operations for post data
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id, authorID int) error
}

type postRepository struct {
	db DBTX
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db DBTX) PostRepository {
	return &postRepository{db: db}
}

const postSelect = `SELECT p.id, p.title, p.content, p.category, p.author_id, p.image_url, p.location,
                           p.expires_at, p.created_at, p.updated_at, u.id, u.email
                    FROM posts p JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{Author: &model.PostAuthor{}}
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Category, &p.AuthorID, &p.ImageURL, &p.Location,
		&p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt, &p.Author.ID, &p.Author.Email,
	)
	return p, err
}

// Create inserts a post. A missing author yields ErrAuthorNotFound.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	sql := `INSERT INTO posts (title, content, category, author_id, image_url, location, expires_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, p.Title, p.Content, p.Category, p.AuthorID, p.ImageURL, p.Location, p.ExpiresAt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAuthorNotFound
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindByID retrieves a post with its author, or nil when absent
func (r *postRepository) FindByID(ctx context.Context, id int) (*model.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	return p, nil
}

// FindAll lists every post, newest first
func (r *postRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.Query(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// Update writes the mutable fields. The author_id guard makes a post that
// changed hands or vanished since the ownership check report ErrNotFound.
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	sql := `UPDATE posts
            SET title = $1, content = $2, category = $3, image_url = $4, location = $5, expires_at = $6
            WHERE id = $7 AND author_id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, p.Title, p.Content, p.Category, p.ImageURL, p.Location, p.ExpiresAt, p.ID, p.AuthorID).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// Delete removes a post owned by authorID
func (r *postRepository) Delete(ctx context.Context, id, authorID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
