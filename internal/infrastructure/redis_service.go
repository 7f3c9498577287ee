package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const revokedTokenPrefix = "revoked:"

type RedisOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisService keeps the token revocation list. A service without a client
// is disabled: nothing is ever revoked.
type RedisService struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisService(ctx context.Context, opts RedisOptions, log *logrus.Logger) *RedisService {
	if opts.URL != "" {
		opt, err := redis.ParseURL(opts.URL)
		if err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				log.WithError(err).Warn("redis connection failed with REDIS_URL")
				_ = client.Close()
			} else {
				log.Info("connected to redis using REDIS_URL")
				return &RedisService{client: client, log: log}
			}
		} else {
			log.WithError(err).Warn("invalid REDIS_URL")
		}
	}

	if opts.Host == "" {
		log.Info("redis not configured, token revocation disabled")
		return &RedisService{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis connection failed, token revocation disabled")
		_ = client.Close()
		return &RedisService{log: log}
	}

	log.WithField("addr", fmt.Sprintf("%s:%s", opts.Host, opts.Port)).Info("connected to redis")
	return &RedisService{client: client, log: log}
}

func NewRedisServiceWithClient(client *redis.Client, log *logrus.Logger) *RedisService {
	return &RedisService{client: client, log: log}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

// RevokeToken marks tokenId as revoked. A zero ttl keeps the entry forever,
// which is what non-expiring tokens need.
func (r *RedisService) RevokeToken(ctx context.Context, tokenId string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, revokedTokenPrefix+tokenId, "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "revoke token")
	}
	return nil
}

func (r *RedisService) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	if r.client == nil || tokenId == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenId).Result()
	if err != nil {
		return false, errors.Wrap(err, "check token revocation")
	}
	return n > 0, nil
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
