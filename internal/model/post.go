package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts.
//
// List methods return posts ordered by UpdatedAt, newest first, with
// Author populated. An empty result is an empty slice, not ErrNotFound.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context) ([]Post, error)
	ListByCategory(ctx context.Context, category string) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	Update(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Post is a blog entry owned by exactly one author.
type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Category  string
	AuthorID  uuid.UUID
	Author    AuthorSummary
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorSummary is the author projection embedded in post reads.
type AuthorSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}
