package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

// DefaultAvatarMaxBytes bounds avatar uploads.
const DefaultAvatarMaxBytes = 500000

const avatarPrefix = "avatars/"

type User struct {
	userStore      model.UserStore
	storage        model.Storage
	hasher         model.PasswordHasher
	avatarMaxBytes int64
	logger         *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	storage model.Storage,
	hasher model.PasswordHasher,
	avatarMaxBytes int64,
	logger *logger.Logger,
) *User {
	if avatarMaxBytes <= 0 {
		avatarMaxBytes = DefaultAvatarMaxBytes
	}
	return &User{
		userStore:      userStore,
		storage:        storage,
		hasher:         hasher,
		avatarMaxBytes: avatarMaxBytes,
		logger:         logger,
	}
}

// AvatarMaxBytes is the largest accepted avatar.
func (s *User) AvatarMaxBytes() int64 {
	return s.avatarMaxBytes
}

// GetUser returns the user with the given id. A malformed id is reported as not found.
func (s *User) GetUser(ctx context.Context, id string) (model.PublicUser, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return model.PublicUser{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

// ListAuthors returns every registered user.
func (s *User) ListAuthors(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("User service: failed to list users",
			"error", err.Error())
		return nil, apierror.NewErrInternal(fmt.Errorf("failed to list users: %w", err))
	}

	authors := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		authors = append(authors, u.Public())
	}

	return authors, nil
}

// ChangeAvatar stores upload as the principal's avatar and removes the previous one.
func (s *User) ChangeAvatar(ctx context.Context, principal model.Principal, upload model.AvatarUpload) (model.PublicUser, error) {
	if len(upload.Data) == 0 {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgChooseImage)
	}
	if int64(len(upload.Data)) > s.avatarMaxBytes {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgAvatarTooBig)
	}

	contentType := http.DetectContentType(upload.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgAvatarNotImage)
	}

	user, err := s.load(ctx, principal.ID)
	if err != nil {
		return model.PublicUser{}, err
	}

	key := avatarKey(upload.FileName)
	err = s.storage.Upload(ctx, key, bytes.NewReader(upload.Data), int64(len(upload.Data)), contentType)
	if err != nil {
		s.logger.Error("User service: failed to upload avatar",
			"user_id", user.ID,
			"key", key,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to upload avatar: %w", err))
	}

	previous := user.Avatar
	user.Avatar = key
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		s.removeAvatar(ctx, user.ID, key)
		if errors.Is(err, model.ErrNotFound) {
			return model.PublicUser{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
		}
		s.logger.Error("User service: failed to save avatar",
			"user_id", user.ID,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to update user: %w", err))
	}

	if previous != "" && previous != key {
		s.removeAvatar(ctx, user.ID, previous)
	}

	s.logger.Info("User service: avatar changed",
		"user_id", user.ID,
		"key", key)

	return updated.Public(), nil
}

// EditUser applies a partial profile update for the principal.
func (s *User) EditUser(ctx context.Context, principal model.Principal, params model.EditUserParams) (model.PublicUser, error) {
	user, err := s.load(ctx, principal.ID)
	if err != nil {
		return model.PublicUser{}, err
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		user.Name = name
	}

	if strings.TrimSpace(params.Email) != "" {
		email := normalizeEmail(params.Email)
		if !isEmail(email) {
			return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgInvalidEmail)
		}
		if email != user.Email {
			_, err := s.userStore.GetByEmail(ctx, email)
			switch {
			case err == nil:
				return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgEmailExists)
			case !errors.Is(err, model.ErrNotFound):
				s.logger.Error("User service: failed to get user by email",
					"email", email,
					"error", err.Error())
				return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to get user by email: %w", err))
			}
			user.Email = email
		}
	}

	if params.NewPassword != "" || params.ConfirmNewPassword != "" {
		if !s.hasher.Verify(params.CurrentPassword, user.PasswordHash) {
			return model.PublicUser{}, apierror.NewErrInvalidCredentials()
		}
		if passwordTooShort(params.NewPassword) {
			return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgPasswordTooShort)
		}
		if params.NewPassword != params.ConfirmNewPassword {
			return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgPasswordsMismatch)
		}
		hash, err := s.hasher.Hash(params.NewPassword)
		if err != nil {
			if errors.Is(err, model.ErrPasswordTooLong) {
				return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgPasswordTooLong)
			}
			s.logger.Error("User service: failed to hash password",
				"user_id", user.ID,
				"error", err.Error())
			return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to hash password: %w", err))
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgEmailExists)
		case errors.Is(err, model.ErrNotFound):
			return model.PublicUser{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
		}
		s.logger.Error("User service: failed to update user",
			"user_id", user.ID,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to update user: %w", err))
	}

	s.logger.Info("User service: user updated",
		"user_id", user.ID)

	return updated.Public(), nil
}

func (s *User) load(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apierror.NewErrNotFound(apierror.MsgUserNotFound)
		}
		s.logger.Error("User service: failed to get user",
			"user_id", id,
			"error", err.Error())
		return model.User{}, apierror.NewErrInternal(fmt.Errorf("failed to get user: %w", err))
	}
	return user, nil
}

func (s *User) removeAvatar(ctx context.Context, userID uuid.UUID, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("User service: failed to delete avatar",
			"user_id", userID,
			"key", key,
			"error", err.Error())
	}
}

// avatarKey builds avatars/<base>-<uuid><ext> from an uploaded file name.
func avatarKey(fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))

	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, base)
	if base == "" {
		base = "avatar"
	}

	ext = strings.Map(func(r rune) rune {
		if r == '.' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if ext == "." {
		ext = ""
	}

	return avatarPrefix + base + "-" + uuid.NewString() + ext
}
