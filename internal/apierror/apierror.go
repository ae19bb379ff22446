// Package apierror defines the errors returned to API clients.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an API error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// Error is an error with a client-facing message. Err, if set, is kept for
// logging and never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindInvalidCredentials:
		return http.StatusUnprocessableEntity
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// From returns the API error in err's chain, if any.
func From(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an API error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := From(err)
	return ok && apiErr.Kind == kind
}

const (
	MsgFillAllFields      = "Please fill in all fields."
	MsgInvalidEmail       = "Please provide a valid email."
	MsgPasswordTooShort   = "Password must be at least 6 characters."
	MsgPasswordTooLong    = "Password must be at most 72 bytes."
	MsgPasswordsMismatch  = "Passwords do not match."
	MsgEmailExists        = "Email already exists."
	MsgLoginFillAllFields = "Fill in all fields."
	MsgInvalidCredentials = "Invalid credentials."
	MsgUserNotFound       = "User not found."
	MsgPostNotFound       = "Post not found."
	MsgChooseImage        = "Please choose an image."
	MsgAvatarTooBig       = "Profile picture too big. Should be less than 500kb."
	MsgAvatarNotImage     = "Profile picture must be an image."
	MsgNoToken            = "Unauthorized. No token."
	MsgInvalidToken       = "Unauthorized. Invalid token."
	MsgNotPostAuthorEdit  = "You are not authorized to edit this post."
	MsgNotPostAuthorDel   = "You are not authorized to delete this post."
	MsgInvalidBody        = "Invalid request body."
	MsgUnknown            = "An unknown error occurred."
)

func NewErrValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewErrInvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: MsgInvalidCredentials}
}

func NewErrUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewErrForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewErrInternal wraps err behind the generic client message.
func NewErrInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgUnknown, Err: err}
}
