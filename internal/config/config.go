package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port string

	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	NatsURL string

	LoginRateLimit float64
	LoginRateBurst int

	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           GetEnvAsString("PORT", "3003"),
		StoreDriver:    strings.ToLower(GetEnvAsString("STORE_DRIVER", StoreSQLite)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     GetEnvAsString("SQLITE_PATH", "bloglist.db"),
		MongoURI:       GetEnvAsString("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:  GetEnvAsString("MONGODB_DATABASE", "bloglist"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       GetEnvAsDuration("TOKEN_TTL", 0),
		BcryptCost:     GetEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        GetEnvAsInt("REDIS_DB", 0),
		NatsURL:        os.Getenv("NATS_URL"),
		LoginRateLimit: GetEnvAsFloat("LOGIN_RATE_LIMIT", 1),
		LoginRateBurst: GetEnvAsInt("LOGIN_RATE_BURST", 5),
		LogLevel:       GetEnvAsString("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	switch c.StoreDriver {
	case StoreSQLite, StoreMongo:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}
	return nil
}
