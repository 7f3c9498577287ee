package repositories

import (
	"context"

	"github.com/google/uuid"

	"bloglist-service/internal/domain/entities"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error)
	// FindById returns (nil, nil) when the blog does not exist.
	FindById(ctx context.Context, id uuid.UUID) (*entities.Blog, error)
	List(ctx context.Context) ([]*entities.Blog, error)
	Update(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (*entities.Blog, error)
	// Delete removes the blog and detaches it from its owner. It returns
	// ErrBlogNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
