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

type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register validates params and creates a new user.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(params.Email)

	if err := validate.Struct(params); err != nil {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgFillAllFields)
	}

	email := normalizeEmail(params.Email)
	if !isEmail(email) {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgInvalidEmail)
	}

	if passwordTooShort(params.Password) {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgPasswordTooShort)
	}

	if params.Password != params.ConfirmPassword {
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgPasswordsMismatch)
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgEmailExists)
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to get user by email: %w", err))
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.PublicUser{}, a.hashError(err)
	}

	now := time.Now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return model.PublicUser{}, apierror.NewErrValidation(apierror.MsgEmailExists)
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternal(fmt.Errorf("failed to create user: %w", err))
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"email", email)

	return user.Public(), nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password are reported identically.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.LoginResult, error) {
	params.Email = strings.TrimSpace(params.Email)

	if err := validate.Struct(params); err != nil {
		return model.LoginResult{}, apierror.NewErrValidation(apierror.MsgLoginFillAllFields)
	}

	email := normalizeEmail(params.Email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown email",
				"email", email)
			return model.LoginResult{}, apierror.NewErrInvalidCredentials()
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.LoginResult{}, apierror.NewErrInternal(fmt.Errorf("failed to get user by email: %w", err))
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.LoginResult{}, apierror.NewErrInvalidCredentials()
	}

	token, err := a.tokens.Issue(model.Principal{ID: user.ID, Name: user.Name})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return model.LoginResult{}, apierror.NewErrInternal(fmt.Errorf("failed to issue token: %w", err))
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.LoginResult{Token: token, ID: user.ID, Name: user.Name}, nil
}

func (a *Auth) hashError(err error) error {
	if errors.Is(err, model.ErrPasswordTooLong) {
		return apierror.NewErrValidation(apierror.MsgPasswordTooLong)
	}
	a.logger.Error("Auth service: failed to hash password",
		"error", err.Error())
	return apierror.NewErrInternal(fmt.Errorf("failed to hash password: %w", err))
}
