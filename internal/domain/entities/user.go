package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainerrors "bloglist-service/internal/domain/errors"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 3
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

type User struct {
	Id           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	Name         string
	PasswordHash string
	Blogs        []*Blog
}

func NewUser(username, name, passwordHash string) *User {
	now := time.Now()
	return &User{
		Id:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     strings.TrimSpace(username),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		Blogs:        make([]*Blog, 0),
	}
}

func (u *User) validate() error {
	if utf8.RuneCountInString(u.Username) < MinUsernameLength {
		return domainerrors.NewValidationError("username", "must be at least three characters")
	}
	if u.PasswordHash == "" {
		return domainerrors.NewValidationError("password", "must not be empty")
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return domainerrors.NewValidationError("created_at", "must be before updated_at")
	}
	return nil
}

// ValidatePassword applies the length policy to a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domainerrors.NewValidationError("password", "must be at least three characters")
	}
	if len(password) > MaxPasswordBytes {
		return domainerrors.NewValidationError("password", "must be at most 72 bytes")
	}
	return nil
}
