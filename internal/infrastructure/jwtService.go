package infrastructure

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/policy"
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

type tokenClaims struct {
	UserId   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 identity tokens. Tokens carry no
// expiry unless a positive ttl is configured.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTService{
		secretKey: []byte(secret),
		ttl:       ttl,
	}, nil
}

func (j *JWTService) GenerateToken(userId uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserId:   userId.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken never returns a raw parser error: every failure is either
// ErrMissingToken or ErrInvalidToken.
func (j *JWTService) VerifyToken(tokenString string) (*policy.Identity, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrMissingToken
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	userId, err := uuid.Parse(claims.UserId)
	if err != nil || userId == uuid.Nil {
		return nil, domainerrors.ErrInvalidToken
	}

	identity := &policy.Identity{
		UserId:   userId,
		Username: claims.Username,
		TokenId:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
