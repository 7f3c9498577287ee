package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/command"
	"bloglist-service/internal/application/interfaces"
	"bloglist-service/internal/application/mapper"
	"bloglist-service/internal/application/query"
	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/policy"
	"bloglist-service/internal/domain/repositories"
	"bloglist-service/internal/infrastructure/messaging"
)

type UserService struct {
	userRepo    repositories.UserRepository
	hasher      interfaces.PasswordHasher
	tokens      interfaces.TokenService
	revocations interfaces.TokenRevocationStore
	events      interfaces.EventPublisher
	log         *logrus.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	hasher interfaces.PasswordHasher,
	tokens interfaces.TokenService,
	revocations interfaces.TokenRevocationStore,
	events interfaces.EventPublisher,
	log *logrus.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:    userRepo,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		events:      events,
		log:         log,
	}
}

type userRegisteredEvent struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	username := strings.TrimSpace(createCommand.Username)
	if utf8.RuneCountInString(username) < entities.MinUsernameLength {
		return nil, domainerrors.NewValidationError("username", "must be at least three characters")
	}
	if err := entities.ValidatePassword(createCommand.Password); err != nil {
		return nil, err
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, domainerrors.ErrUsernameTaken
	}

	passwordHash, err := s.hasher.Hash(createCommand.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	newUser := entities.NewUser(username, createCommand.Name, passwordHash)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": createdUser.Id, "username": createdUser.Username}).Info("user registered")
	publish(ctx, s.events, s.log, messaging.SubjectUserRegistered, userRegisteredEvent{
		Id:       createdUser.Id,
		Username: createdUser.Username,
	})

	return &command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func (s *UserService) LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(loginCommand.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(loginCommand.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.Id, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	return &command.LoginUserCommandResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

func (s *UserService) LogoutUser(ctx context.Context, logoutCommand *command.LogoutUserCommand) error {
	caller := logoutCommand.Caller
	if err := policy.RequireIdentity(caller); err != nil {
		return err
	}

	var ttl time.Duration
	if !caller.ExpiresAt.IsZero() {
		ttl = time.Until(caller.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}
	return s.revocations.RevokeToken(ctx, caller.TokenId, ttl)
}

// Authenticate verifies the token and rejects revoked ones. A failing
// revocation store is logged and does not lock users out.
func (s *UserService) Authenticate(ctx context.Context, token string) (*policy.Identity, error) {
	identity, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, identity.TokenId)
	if err != nil {
		s.log.WithError(err).Warn("token revocation check failed")
		return identity, nil
	}
	if revoked {
		return nil, domainerrors.ErrInvalidToken
	}
	return identity, nil
}

func (s *UserService) FindUserById(ctx context.Context, id uuid.UUID) (*query.UserQueryResult, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	return &query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) (*query.UserQueryListResult, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &query.UserQueryListResult{
		Result: mapper.NewUserResultsFromEntities(users),
	}, nil
}
