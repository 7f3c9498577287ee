package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/interfaces"
)

// publish never fails the caller: the write already happened.
func publish(ctx context.Context, events interfaces.EventPublisher, log *logrus.Logger, subject string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, subject, payload); err != nil {
		log.WithError(err).WithField("subject", subject).Warn("failed to publish event")
	}
}
