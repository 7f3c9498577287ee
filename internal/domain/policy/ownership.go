// Package policy decides whether a caller may mutate a blog.
package policy

import (
	"time"

	"github.com/google/uuid"

	domainerrors "bloglist-service/internal/domain/errors"
)

// Identity is the verified caller carried by a bearer token.
type Identity struct {
	UserId    uuid.UUID
	Username  string
	TokenId   string
	ExpiresAt time.Time // zero for tokens that never expire
}

// RequireIdentity rejects anonymous callers.
func RequireIdentity(caller *Identity) error {
	if caller == nil || caller.UserId == uuid.Nil {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

// CanMutateBlog allows the call only when caller owns the blog.
func CanMutateBlog(caller *Identity, ownerId uuid.UUID) error {
	if err := RequireIdentity(caller); err != nil {
		return err
	}
	if caller.UserId != ownerId {
		return domainerrors.ErrForbidden
	}
	return nil
}
