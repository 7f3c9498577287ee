package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingToken       = fmt.Errorf("%w: token missing", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: token invalid", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	ErrForbidden          = errors.New("only the creator of a blog can modify it")
	ErrUsernameTaken      = errors.New("username must be unique")
	ErrUserNotFound       = errors.New("user not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrTooManyRequests    = errors.New("too many login attempts, please try again later")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
