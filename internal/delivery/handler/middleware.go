package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/policy"
	"bloglist-service/internal/infrastructure"
)

const (
	identityKey  = "identity"
	bearerScheme = "bearer "
)

// bearerToken returns the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := h.users.Authenticate(c.Request().Context(), bearerToken(c))
		if err != nil {
			return err
		}
		c.Set(identityKey, identity)
		return next(c)
	}
}

func callerFrom(c echo.Context) *policy.Identity {
	identity, _ := c.Get(identityKey).(*policy.Identity)
	return identity
}

func rateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter != nil && !limiter.Allow(c.RealIP()) {
				return domainerrors.ErrTooManyRequests
			}
			return next(c)
		}
	}
}

func (h *Handler) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		entry := h.log.WithFields(logrus.Fields{
			"request_id": res.Header().Get(echo.HeaderXRequestID),
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     res.Status,
			"latency_ms": time.Since(start).Milliseconds(),
			"remote_ip":  c.RealIP(),
		})
		if res.Status >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request handled")
		}
		return nil
	}
}
