// Package nats serves registration and login as NATS request/reply
// subjects next to the HTTP API.
package nats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/command"
	"bloglist-service/internal/application/interfaces"
	domainerrors "bloglist-service/internal/domain/errors"
)

const (
	SubjectRegister = "bloglist.users.register"
	SubjectLogin    = "bloglist.users.login"
	SubjectHealth   = "bloglist.health"

	queueGroup     = "bloglist-service"
	handlerTimeout = 2 * time.Second
)

type Responder struct {
	users interfaces.UserService
	log   *logrus.Logger
	subs  []*nats.Subscription
}

func NewResponder(users interfaces.UserService, log *logrus.Logger) *Responder {
	return &Responder{users: users, log: log}
}

// Subscribe registers queue subscriptions so several instances share the load.
func (r *Responder) Subscribe(nc *nats.Conn) error {
	handlers := map[string]func(context.Context, []byte) []byte{
		SubjectRegister: r.register,
		SubjectLogin:    r.login,
	}
	for subject, handle := range handlers {
		sub, err := nc.QueueSubscribe(subject, queueGroup, r.wrap(handle))
		if err != nil {
			r.Unsubscribe()
			return err
		}
		r.subs = append(r.subs, sub)
	}

	sub, err := nc.Subscribe(SubjectHealth, func(msg *nats.Msg) {
		r.respond(msg, health())
	})
	if err != nil {
		r.Unsubscribe()
		return err
	}
	r.subs = append(r.subs, sub)
	return nil
}

func (r *Responder) Unsubscribe() {
	for _, sub := range r.subs {
		if err := sub.Unsubscribe(); err != nil {
			r.log.WithError(err).WithField("subject", sub.Subject).Warn("nats unsubscribe failed")
		}
	}
	r.subs = nil
}

func (r *Responder) wrap(handle func(context.Context, []byte) []byte) nats.MsgHandler {
	return func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		r.respond(msg, handle(ctx, msg.Data))
	}
}

func (r *Responder) respond(msg *nats.Msg, reply []byte) {
	if err := msg.Respond(reply); err != nil {
		r.log.WithError(err).WithField("subject", msg.Subject).Warn("nats respond failed")
	}
}

func (r *Responder) register(ctx context.Context, data []byte) []byte {
	var req command.CreateUserCommand
	if err := decodeStrict(data, &req); err != nil {
		return errorReply("invalid input")
	}

	res, err := r.users.CreateUser(ctx, &req)
	if err != nil {
		return r.failure("register", err)
	}
	return reply(res.Result)
}

func (r *Responder) login(ctx context.Context, data []byte) []byte {
	var req command.LoginUserCommand
	if err := decodeStrict(data, &req); err != nil {
		return errorReply("invalid input")
	}

	res, err := r.users.LoginUser(ctx, &req)
	if err != nil {
		return r.failure("login", err)
	}
	return reply(res)
}

// failure hides internal errors from the caller and logs them instead.
func (r *Responder) failure(op string, err error) []byte {
	switch {
	case domainerrors.IsValidation(err),
		errors.Is(err, domainerrors.ErrUsernameTaken),
		errors.Is(err, domainerrors.ErrUnauthorized):
		return errorReply(err.Error())
	default:
		r.log.WithError(err).WithField("op", op).Error("nats request failed")
		return errorReply(op + " failed")
	}
}

func decodeStrict(data []byte, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func reply(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return errorReply("encode reply failed")
	}
	return data
}

func errorReply(message string) []byte {
	data, _ := json.Marshal(map[string]string{"error": message})
	return data
}

func health() []byte {
	return reply(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
