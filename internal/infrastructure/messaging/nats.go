package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SubjectUserRegistered = "user.registered"
	SubjectBlogCreated    = "blog.created"
	SubjectBlogUpdated    = "blog.updated"
	SubjectBlogLiked      = "blog.liked"
	SubjectBlogDeleted    = "blog.deleted"
)

// NatsPublisher publishes JSON encoded domain events on core NATS subjects.
type NatsPublisher struct {
	nc  *nats.Conn
	log *logrus.Logger
}

func ConnectNats(url string, log *logrus.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("bloglist-service"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("nats reconnected")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.WithError(err).Error("nats error")
		}),
		nats.DrainTimeout(10 * time.Second),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "connect to nats")
	}

	log.WithField("url", nc.ConnectedUrlRedacted()).Info("connected to nats")
	return &NatsPublisher{nc: nc, log: log}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encode %s event", subject)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return errors.Wrapf(err, "publish %s", subject)
	}
	return nil
}

// Conn exposes the underlying connection for request/reply subscribers.
func (p *NatsPublisher) Conn() *nats.Conn {
	return p.nc
}

func (p *NatsPublisher) Close() error {
	if p.nc == nil || p.nc.IsClosed() {
		return nil
	}
	return p.nc.Drain()
}

// NoopPublisher drops every event. It is used when NATS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NoopPublisher) Close() error { return nil }
