package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/dtroode/quill-server/internal/api/http/context"
	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/mocks"
	"github.com/dtroode/quill-server/internal/model"
	"github.com/dtroode/quill-server/internal/testutil"
)

func newPostHandler(t *testing.T) (*Post, *mocks.PostService) {
	posts := mocks.NewPostService(t)
	return NewPost(posts, httpctx.NewManager(), testutil.MakeNoopLogger()), posts
}

func samplePost() model.Post {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return model.Post{
		ID:        uuid.MustParse("0b7c4f7e-6f0e-4f59-8a53-2c7d4b1e9a10"),
		Title:     "Hello",
		Content:   "World",
		Category:  "news",
		AuthorID:  testPrincipal.ID,
		Author:    model.AuthorSummary{ID: testPrincipal.ID, Name: "Ada", Email: "a@x.com"},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestPost_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, posts := newPostHandler(t)
		p := samplePost()
		posts.On("Create", mock.Anything, testPrincipal, model.CreatePostParams{Title: "Hello", Content: "World", Category: "news"}).
			Return(p, nil)

		rec := serve(http.MethodPost, "/", "/", h.Create, jsonBody(`{"title":"Hello","content":"World","category":"news"}`), true)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{
			"id":%q,"title":"Hello","content":"World","category":"news",
			"author":{"id":%q,"name":"Ada","email":"a@x.com"},
			"createdAt":"2024-05-06T07:08:09Z","updatedAt":"2024-05-06T07:08:09Z"
		}`, p.ID, testPrincipal.ID), rec.Body.String())
	})

	t.Run("author id in body is ignored", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("Create", mock.Anything, testPrincipal, model.CreatePostParams{Title: "t", Content: "c"}).
			Return(samplePost(), nil)

		rec := serve(http.MethodPost, "/", "/", h.Create,
			jsonBody(fmt.Sprintf(`{"title":"t","content":"c","author":%q}`, uuid.New())), true)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _ := newPostHandler(t)

		rec := serve(http.MethodPost, "/", "/", h.Create, jsonBody(`{}`), false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPost_Get(t *testing.T) {
	h, posts := newPostHandler(t)
	posts.On("Get", mock.Anything, "missing").Return(model.Post{}, apierror.NewErrNotFound(apierror.MsgPostNotFound))

	rec := serve(http.MethodGet, "/{id}", "/missing", h.Get, nil, false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, apierror.MsgPostNotFound), rec.Body.String())
}

func TestPost_Lists(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("List", mock.Anything).Return([]model.Post{samplePost()}, nil)

		rec := serve(http.MethodGet, "/", "/", h.List, nil, false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Hello"`)
	})

	t.Run("category", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("ListByCategory", mock.Anything, "news").Return([]model.Post{}, nil)

		rec := serve(http.MethodGet, "/category/{category}", "/category/news", h.ListByCategory, nil, false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("author", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("ListByAuthor", mock.Anything, "abc").Return([]model.Post{}, nil)

		rec := serve(http.MethodGet, "/user/{userId}", "/user/abc", h.ListByAuthor, nil, false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("List", mock.Anything).Return(nil, apierror.NewErrInternal(assert.AnError))

		rec := serve(http.MethodGet, "/", "/", h.List, nil, false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, apierror.MsgUnknown), rec.Body.String())
	})
}

func TestPost_Edit(t *testing.T) {
	p := samplePost()

	t.Run("partial body", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("CheckEditable", mock.Anything, testPrincipal, p.ID.String()).Return(nil)
		posts.On("Edit", mock.Anything, testPrincipal, p.ID.String(), mock.MatchedBy(func(params model.EditPostParams) bool {
			return params.Title == nil && params.Content == nil && params.Category != nil && *params.Category == "tech"
		})).Return(p, nil)

		rec := serve(http.MethodPut, "/{id}", "/"+p.ID.String(), h.Edit, jsonBody(`{"category":"tech"}`), true)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed body from owner", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("CheckEditable", mock.Anything, testPrincipal, p.ID.String()).Return(nil)

		rec := serve(http.MethodPut, "/{id}", "/"+p.ID.String(), h.Edit, jsonBody(`not json`), true)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, apierror.MsgInvalidBody), rec.Body.String())
	})

	guarded := []struct {
		name       string
		checkErr   error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "foreign post",
			checkErr:   apierror.NewErrForbidden(apierror.MsgNotPostAuthorEdit),
			wantStatus: http.StatusForbidden,
			wantMsg:    apierror.MsgNotPostAuthorEdit,
		},
		{
			name:       "missing post",
			checkErr:   apierror.NewErrNotFound(apierror.MsgPostNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    apierror.MsgPostNotFound,
		},
	}
	bodies := map[string]string{
		"valid":       `{"title":"x"}`,
		"malformed":   `{not json`,
		"wrong types": `{"title":5}`,
		"array":       `[]`,
		"empty":       ``,
	}

	for _, tt := range guarded {
		for bodyName, body := range bodies {
			tt, body := tt, body
			t.Run(tt.name+" with "+bodyName+" body", func(t *testing.T) {
				h, posts := newPostHandler(t)
				posts.On("CheckEditable", mock.Anything, testPrincipal, p.ID.String()).Return(tt.checkErr)

				rec := serve(http.MethodPut, "/{id}", "/"+p.ID.String(), h.Edit, jsonBody(body), true)

				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMsg), rec.Body.String())
				posts.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	}
}

func TestPost_Delete(t *testing.T) {
	p := samplePost()

	t.Run("success", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("Delete", mock.Anything, testPrincipal, p.ID.String()).Return(nil)

		rec := serve(http.MethodDelete, "/{id}", "/"+p.ID.String(), h.Delete, nil, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Post deleted successfully."}`, rec.Body.String())
	})

	t.Run("forbidden", func(t *testing.T) {
		h, posts := newPostHandler(t)
		posts.On("Delete", mock.Anything, testPrincipal, p.ID.String()).
			Return(apierror.NewErrForbidden(apierror.MsgNotPostAuthorDel))

		rec := serve(http.MethodDelete, "/{id}", "/"+p.ID.String(), h.Delete, nil, true)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
