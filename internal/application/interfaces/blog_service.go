package interfaces

import (
	"context"

	"github.com/google/uuid"

	"bloglist-service/internal/application/command"
	"bloglist-service/internal/application/query"
)

type BlogService interface {
	CreateBlog(ctx context.Context, createCommand *command.CreateBlogCommand) (*command.BlogCommandResult, error)
	UpdateBlog(ctx context.Context, updateCommand *command.UpdateBlogCommand) (*command.BlogCommandResult, error)
	LikeBlog(ctx context.Context, likeCommand *command.LikeBlogCommand) (*command.BlogCommandResult, error)
	DeleteBlog(ctx context.Context, deleteCommand *command.DeleteBlogCommand) error
	FindBlogById(ctx context.Context, id uuid.UUID) (*query.BlogQueryResult, error)
	ListBlogs(ctx context.Context) (*query.BlogQueryListResult, error)
	Stats(ctx context.Context) (*query.BlogStatsQueryResult, error)
}
