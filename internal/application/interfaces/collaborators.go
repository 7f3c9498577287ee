package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloglist-service/internal/domain/policy"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenService interface {
	GenerateToken(userId uuid.UUID, username string) (string, error)
	VerifyToken(token string) (*policy.Identity, error)
}

type TokenRevocationStore interface {
	RevokeToken(ctx context.Context, tokenId string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenId string) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}
