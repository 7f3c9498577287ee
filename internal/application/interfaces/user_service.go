package interfaces

import (
	"context"

	"github.com/google/uuid"

	"bloglist-service/internal/application/command"
	"bloglist-service/internal/application/query"
	"bloglist-service/internal/domain/policy"
)

type UserService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	LogoutUser(ctx context.Context, logoutCommand *command.LogoutUserCommand) error
	Authenticate(ctx context.Context, token string) (*policy.Identity, error)
	FindUserById(ctx context.Context, id uuid.UUID) (*query.UserQueryResult, error)
	ListUsers(ctx context.Context) (*query.UserQueryListResult, error)
}
