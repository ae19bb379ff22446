package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quill-server/internal/model"
)

var postCols = []string{"id", "title", "content", "category", "author_id", "created_at", "updated_at", "id", "name", "email"}

func samplePost() model.Post {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	author := uuid.New()
	return model.Post{
		ID:        uuid.New(),
		Title:     "Hello",
		Content:   "World",
		Category:  "news",
		AuthorID:  author,
		Author:    model.AuthorSummary{ID: author, Name: "Ada", Email: "ada@example.com"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func addPostRow(rows *sqlmock.Rows, p model.Post) *sqlmock.Rows {
	return rows.AddRow(p.ID.String(), p.Title, p.Content, p.Category, p.AuthorID.String(), p.CreatedAt, p.UpdatedAt,
		p.Author.ID.String(), p.Author.Name, p.Author.Email)
}

func TestPostRepository_Create(t *testing.T) {
	p := samplePost()

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^WITH p AS \(\s*INSERT INTO posts .+RETURNING \*\).+FROM p JOIN users u ON u.id = p.author_id$`).
			WithArgs(p.ID, p.Title, p.Content, p.Category, p.AuthorID, p.CreatedAt, p.UpdatedAt).
			WillReturnRows(addPostRow(sqlmock.NewRows(postCols), p))

		got, err := NewPostRepository(db).Create(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("unknown author", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^WITH p AS`).WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

		_, err := NewPostRepository(db).Create(context.Background(), p)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^WITH p AS`).WillReturnError(errors.New("db down"))

		_, err := NewPostRepository(db).Create(context.Background(), p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create post")
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	p := samplePost()

	t.Run("found with author", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^SELECT p.id.+FROM posts p JOIN users u ON u.id = p.author_id\s+WHERE p.id = \$1$`).
			WithArgs(p.ID).
			WillReturnRows(addPostRow(sqlmock.NewRows(postCols), p))

		got, err := NewPostRepository(db).GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Author, got.Author)
		assert.Equal(t, p, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^SELECT p.id`).WithArgs(p.ID).WillReturnError(sql.ErrNoRows)

		_, err := NewPostRepository(db).GetByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestPostRepository_Lists(t *testing.T) {
	older := samplePost()
	newer := samplePost()
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)

	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(r *PostRepository) ([]model.Post, error)
	}{
		{
			name:  "all",
			query: `(?s)^SELECT p.id.+FROM posts p JOIN users u ON u.id = p.author_id\s+ORDER BY p.updated_at DESC$`,
			call:  func(r *PostRepository) ([]model.Post, error) { return r.List(context.Background()) },
		},
		{
			name:  "by category",
			query: `(?s)^SELECT p.id.+WHERE p.category = \$1\s+ORDER BY p.updated_at DESC$`,
			args:  []driver.Value{"news"},
			call: func(r *PostRepository) ([]model.Post, error) {
				return r.ListByCategory(context.Background(), "news")
			},
		},
		{
			name:  "by author",
			query: `(?s)^SELECT p.id.+WHERE p.author_id = \$1\s+ORDER BY p.updated_at DESC$`,
			args:  []driver.Value{older.AuthorID},
			call: func(r *PostRepository) ([]model.Post, error) {
				return r.ListByAuthor(context.Background(), older.AuthorID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			rows := addPostRow(addPostRow(sqlmock.NewRows(postCols), newer), older)
			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(rows)

			got, err := tt.call(NewPostRepository(db))
			require.NoError(t, err)
			assert.Equal(t, []model.Post{newer, older}, got)
		})

		t.Run(tt.name+" empty", func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectQuery(tt.query).WillReturnRows(sqlmock.NewRows(postCols))

			got, err := tt.call(NewPostRepository(db))
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestPostRepository_ListScanError(t *testing.T) {
	db, mock := newMock(t)
	rows := sqlmock.NewRows(postCols).AddRow("not-a-uuid", "t", "c", "x", "also-bad", time.Now(), time.Now(), "bad", "n", "e")
	mock.ExpectQuery(`(?s)^SELECT p.id`).WillReturnRows(rows)

	_, err := NewPostRepository(db).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan post")
}

func TestPostRepository_Update(t *testing.T) {
	p := samplePost()
	p.Title = "Edited"

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^WITH p AS \(\s*UPDATE posts SET title = \$2, content = \$3, category = \$4, updated_at = \$5\s+WHERE id = \$1`).
			WithArgs(p.ID, p.Title, p.Content, p.Category, p.UpdatedAt).
			WillReturnRows(addPostRow(sqlmock.NewRows(postCols), p))

		got, err := NewPostRepository(db).Update(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Title)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`(?s)^WITH p AS \(\s*UPDATE posts`).WillReturnError(sql.ErrNoRows)

		_, err := NewPostRepository(db).Update(context.Background(), p)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		anyErr  bool
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`^DELETE FROM posts WHERE id = \$1$`).
					WithArgs(id).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nothing to delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`^DELETE FROM posts`).
					WithArgs(id).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`^DELETE FROM posts`).
					WithArgs(id).
					WillReturnError(errors.New("db down"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.setup(mock)

			err := NewPostRepository(db).Delete(context.Background(), id)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

