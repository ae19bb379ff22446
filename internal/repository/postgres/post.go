package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

const postSelect = `SELECT p.id, p.title, p.content, p.category, p.author_id, p.created_at, p.updated_at,
			  u.id, u.name, u.email`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `WITH p AS (
			  INSERT INTO posts (id, title, content, category, author_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING *)
			  ` + postSelect + `
			  FROM p JOIN users u ON u.id = p.author_id`

	saved, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Category, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	))
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return model.Post{}, model.ErrNotFound
		}
		if hasCode(err, uniqueViolation) {
			return model.Post{}, model.ErrAlreadyExists
		}
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return saved, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := postSelect + `
			  FROM posts p JOIN users u ON u.id = p.author_id
			  WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := postSelect + `
			  FROM posts p JOIN users u ON u.id = p.author_id
			  ORDER BY p.updated_at DESC`

	return r.list(ctx, query)
}

func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	query := postSelect + `
			  FROM posts p JOIN users u ON u.id = p.author_id
			  WHERE p.category = $1
			  ORDER BY p.updated_at DESC`

	return r.list(ctx, query, category)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	query := postSelect + `
			  FROM posts p JOIN users u ON u.id = p.author_id
			  WHERE p.author_id = $1
			  ORDER BY p.updated_at DESC`

	return r.list(ctx, query, authorID)
}

func (r *PostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	query := `WITH p AS (
			  UPDATE posts SET title = $2, content = $3, category = $4, updated_at = $5
			  WHERE id = $1
			  RETURNING *)
			  ` + postSelect + `
			  FROM p JOIN users u ON u.id = p.author_id`

	saved, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Category, post.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	return saved, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func scanPost(row scanner) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Category, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Name, &post.Author.Email,
	)
	return post, err
}
