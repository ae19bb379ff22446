package model

import "github.com/google/uuid"

// RegisterParams carries a registration request.
type RegisterParams struct {
	Name            string `validate:"required"`
	Email           string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string
}

// LoginParams carries a login request.
type LoginParams struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	ID    uuid.UUID
	Name  string
}

// EditUserParams carries a partial profile update. Empty fields are left unchanged.
type EditUserParams struct {
	Name               string
	Email              string
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// AvatarUpload is an uploaded profile picture.
type AvatarUpload struct {
	FileName string
	Data     []byte
}

// CreatePostParams carries a new post.
type CreatePostParams struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Category string
}

// EditPostParams carries a partial post update. Nil or empty fields keep their
// previous values.
type EditPostParams struct {
	Title    *string
	Content  *string
	Category *string
}
