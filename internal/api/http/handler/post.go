package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

const msgPostDeleted = "Post deleted successfully."

// PostService defines post operations.
type PostService interface {
	Create(ctx context.Context, principal model.Principal, params model.CreatePostParams) (model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByCategory(ctx context.Context, category string) ([]model.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]model.Post, error)
	CheckEditable(ctx context.Context, principal model.Principal, id string) error
	Edit(ctx context.Context, principal model.Principal, id string, params model.EditPostParams) (model.Post, error)
	Delete(ctx context.Context, principal model.Principal, id string) error
}

// Post handles HTTP endpoints under /api/posts.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r, h.contextManager, h.logger)
	if !ok {
		return
	}

	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	post, err := h.postService.Create(r.Context(), principal, model.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, newPostResponse(post))
}

func (h *Post) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Post) List(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.postService.List(r.Context()))
}

func (h *Post) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.postService.ListByCategory(r.Context(), chi.URLParam(r, "category")))
}

func (h *Post) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.postService.ListByAuthor(r.Context(), chi.URLParam(r, "userId")))
}

// Edit resolves the post and its ownership before reading the body, so
// missing and foreign posts answer 404 and 403 whatever the payload.
func (h *Post) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r, h.contextManager, h.logger)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.postService.CheckEditable(r.Context(), principal, id); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req editPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	post, err := h.postService.Edit(r.Context(), principal, id, model.EditPostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Post) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r, h.contextManager, h.logger)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: msgPostDeleted})
}

func (h *Post) writeList(w http.ResponseWriter) func([]model.Post, error) {
	return func(posts []model.Post, err error) {
		if err != nil {
			response.Error(w, h.logger, err)
			return
		}
		response.JSON(w, http.StatusOK, newPostResponses(posts))
	}
}
