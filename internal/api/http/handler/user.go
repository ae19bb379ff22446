package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

const (
	avatarFormField = "avatar"
	// multipartOverhead leaves room for boundaries and headers around the file.
	multipartOverhead = 64 << 10
)

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error)
	Login(ctx context.Context, params model.LoginParams) (model.LoginResult, error)
}

// UserService defines profile operations.
type UserService interface {
	GetUser(ctx context.Context, id string) (model.PublicUser, error)
	ListAuthors(ctx context.Context) ([]model.PublicUser, error)
	ChangeAvatar(ctx context.Context, principal model.Principal, upload model.AvatarUpload) (model.PublicUser, error)
	EditUser(ctx context.Context, principal model.Principal, params model.EditUserParams) (model.PublicUser, error)
	AvatarMaxBytes() int64
}

// User handles HTTP endpoints under /api/users.
type User struct {
	authService    AuthService
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(authService AuthService, userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		authService:    authService,
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Message{
		Message: fmt.Sprintf("New user %s registered", user.Email),
	})
}

// Login exchanges credentials for a token.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), model.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		ID:    result.ID,
		Name:  result.Name,
	})
}

func (h *User) Authors(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAuthors(r.Context())
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponses(users))
}

func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponse(user))
}

// ChangeAvatar replaces the caller's profile picture with the multipart
// "avatar" file.
func (h *User) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	maxBytes := h.userService.AvatarMaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, h.logger, apierror.NewErrValidation(apierror.MsgAvatarTooBig))
			return
		}
		response.Error(w, h.logger, apierror.NewErrValidation(apierror.MsgChooseImage))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		response.Error(w, h.logger, apierror.NewErrValidation(apierror.MsgChooseImage))
		return
	}

	user, err := h.userService.ChangeAvatar(r.Context(), principal, model.AvatarUpload{
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponse(user))
}

func (h *User) EditUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req editUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	user, err := h.userService.EditUser(r.Context(), principal, model.EditUserParams{
		Name:               req.Name,
		Email:              req.Email,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponse(user))
}

func (h *User) principal(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	return principalFromRequest(w, r, h.contextManager, h.logger)
}

func principalFromRequest(w http.ResponseWriter, r *http.Request, cm model.ContextManager, lg *logger.Logger) (model.Principal, bool) {
	principal, ok := cm.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, lg, apierror.NewErrUnauthenticated(apierror.MsgNoToken))
		return model.Principal{}, false
	}
	return principal, true
}
