package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

type Post struct {
	postStore model.PostStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewPost(postStore model.PostStore, userStore model.UserStore, logger *logger.Logger) *Post {
	return &Post{
		postStore: postStore,
		userStore: userStore,
		logger:    logger,
	}
}

// Create stores a new post authored by principal.
func (s *Post) Create(ctx context.Context, principal model.Principal, params model.CreatePostParams) (model.Post, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Content = strings.TrimSpace(params.Content)
	params.Category = strings.TrimSpace(params.Category)

	if err := validate.Struct(params); err != nil {
		return model.Post{}, apierror.NewErrValidation(apierror.MsgFillAllFields)
	}

	_, err := s.userStore.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
		}
		s.logger.Error("Post service: failed to get author",
			"user_id", principal.ID,
			"error", err.Error())
		return model.Post{}, apierror.NewErrInternal(fmt.Errorf("failed to get author: %w", err))
	}

	now := time.Now().UTC()
	post, err := s.postStore.Create(ctx, model.Post{
		ID:        uuid.New(),
		Title:     params.Title,
		Content:   params.Content,
		Category:  params.Category,
		AuthorID:  principal.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
		}
		s.logger.Error("Post service: failed to create post",
			"user_id", principal.ID,
			"error", err.Error())
		return model.Post{}, apierror.NewErrInternal(fmt.Errorf("failed to create post: %w", err))
	}

	s.logger.Info("Post service: post created",
		"post_id", post.ID,
		"user_id", principal.ID)

	return post, nil
}

// Get returns a single post. A malformed id is reported as not found.
func (s *Post) Get(ctx context.Context, id string) (model.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return model.Post{}, apierror.NewErrNotFound(apierror.MsgPostNotFound)
	}
	return s.load(ctx, postID)
}

func (s *Post) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postStore.List(ctx)
	if err != nil {
		return nil, s.listError(err)
	}
	return posts, nil
}

func (s *Post) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	posts, err := s.postStore.ListByCategory(ctx, category)
	if err != nil {
		return nil, s.listError(err)
	}
	return posts, nil
}

// ListByAuthor returns the posts of userID. A malformed id yields no posts.
func (s *Post) ListByAuthor(ctx context.Context, userID string) ([]model.Post, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return []model.Post{}, nil
	}

	posts, err := s.postStore.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, s.listError(err)
	}
	return posts, nil
}

// CheckEditable runs the lookup and ownership checks of Edit without
// applying any change.
func (s *Post) CheckEditable(ctx context.Context, principal model.Principal, id string) error {
	_, err := s.owned(ctx, principal, id, "edit", apierror.MsgNotPostAuthorEdit)
	return err
}

// Edit applies a partial update to a post owned by principal.
func (s *Post) Edit(ctx context.Context, principal model.Principal, id string, params model.EditPostParams) (model.Post, error) {
	post, err := s.owned(ctx, principal, id, "edit", apierror.MsgNotPostAuthorEdit)
	if err != nil {
		return model.Post{}, err
	}

	post.Title = keepIfEmpty(params.Title, post.Title)
	post.Content = keepIfEmpty(params.Content, post.Content)
	post.Category = keepIfEmpty(params.Category, post.Category)
	post.UpdatedAt = time.Now().UTC()

	updated, err := s.postStore.Update(ctx, post)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, apierror.NewErrNotFound(apierror.MsgPostNotFound)
		}
		s.logger.Error("Post service: failed to update post",
			"post_id", post.ID,
			"error", err.Error())
		return model.Post{}, apierror.NewErrInternal(fmt.Errorf("failed to update post: %w", err))
	}

	s.logger.Info("Post service: post updated",
		"post_id", post.ID,
		"user_id", principal.ID)

	return updated, nil
}

// Delete removes a post owned by principal.
func (s *Post) Delete(ctx context.Context, principal model.Principal, id string) error {
	post, err := s.owned(ctx, principal, id, "delete", apierror.MsgNotPostAuthorDel)
	if err != nil {
		return err
	}

	if err := s.postStore.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NewErrNotFound(apierror.MsgPostNotFound)
		}
		s.logger.Error("Post service: failed to delete post",
			"post_id", post.ID,
			"error", err.Error())
		return apierror.NewErrInternal(fmt.Errorf("failed to delete post: %w", err))
	}

	s.logger.Info("Post service: post deleted",
		"post_id", post.ID,
		"user_id", principal.ID)

	return nil
}

// owned loads post id and checks that principal wrote it. A malformed or
// unknown id is NotFound, a foreign post is Forbidden with denyMsg.
func (s *Post) owned(ctx context.Context, principal model.Principal, id, action, denyMsg string) (model.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return model.Post{}, apierror.NewErrNotFound(apierror.MsgPostNotFound)
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}

	if !Authorize(principal, post.AuthorID) {
		s.logger.Info("Post service: "+action+" denied",
			"post_id", post.ID,
			"user_id", principal.ID)
		return model.Post{}, apierror.NewErrForbidden(denyMsg)
	}

	return post, nil
}

func (s *Post) load(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, apierror.NewErrNotFound(apierror.MsgPostNotFound)
		}
		s.logger.Error("Post service: failed to get post",
			"post_id", id,
			"error", err.Error())
		return model.Post{}, apierror.NewErrInternal(fmt.Errorf("failed to get post: %w", err))
	}
	return post, nil
}

func (s *Post) listError(err error) error {
	s.logger.Error("Post service: failed to list posts",
		"error", err.Error())
	return apierror.NewErrInternal(fmt.Errorf("failed to list posts: %w", err))
}

func keepIfEmpty(value *string, current string) string {
	if value == nil {
		return current
	}
	if v := strings.TrimSpace(*value); v != "" {
		return v
	}
	return current
}
