package repositories

import (
	"context"

	"github.com/google/uuid"

	"bloglist-service/internal/domain/entities"
)

// UserRepository lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	AppendOwnedBlog(ctx context.Context, userId, blogId uuid.UUID) error
}
