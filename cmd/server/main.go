package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/interfaces"
	"bloglist-service/internal/application/services"
	"bloglist-service/internal/config"
	"bloglist-service/internal/delivery/handler"
	natsdelivery "bloglist-service/internal/delivery/nats"
	"bloglist-service/internal/domain/repositories"
	"bloglist-service/internal/infrastructure"
	"bloglist-service/internal/infrastructure/db/gormdb"
	"bloglist-service/internal/infrastructure/db/mongodb"
	"bloglist-service/internal/infrastructure/messaging"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

type stores struct {
	users repositories.UserRepository
	blogs repositories.BlogRepository
	close func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")
		return &stores{
			users: mongodb.NewUserRepository(db),
			blogs: mongodb.NewBlogRepository(db),
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil
	default:
		driver, dsn := gormdb.DriverSQLite, cfg.SQLitePath
		if cfg.StoreDriver == config.StorePostgres {
			driver, dsn = gormdb.DriverPostgres, cfg.DatabaseURL
		}
		db, err := gormdb.Open(driver, dsn, log)
		if err != nil {
			return nil, err
		}
		log.WithField("driver", driver).Info("connected to database")
		return &stores{
			users: gormdb.NewUserRepository(db),
			blogs: gormdb.NewBlogRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.close()

	tokens, err := infrastructure.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to create token service: %v", err)
	}

	redisService := infrastructure.NewRedisService(ctx, infrastructure.RedisOptions{
		URL:      cfg.RedisURL,
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log)
	defer redisService.Close()

	var events interfaces.EventPublisher = messaging.NoopPublisher{}
	var publisher *messaging.NatsPublisher
	if cfg.NatsURL != "" {
		publisher, err = messaging.ConnectNats(cfg.NatsURL, log)
		if err != nil {
			log.WithError(err).Warn("nats unavailable, domain events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	loginLimiter := infrastructure.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)
	defer loginLimiter.Stop()

	userService := services.NewUserService(st.users, infrastructure.NewPasswordHasher(cfg.BcryptCost), tokens, redisService, events, log)
	blogService := services.NewBlogService(st.blogs, st.users, events, log)

	if publisher != nil {
		responder := natsdelivery.NewResponder(userService, log)
		if err := responder.Subscribe(publisher.Conn()); err != nil {
			log.WithError(err).Warn("nats request/reply subjects disabled")
		} else {
			defer responder.Unsubscribe()
		}
	}

	e := handler.NewRouter(handler.NewHandler(userService, blogService, log), loginLimiter)

	go func() {
		log.Infof("server running on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
}
