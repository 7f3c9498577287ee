package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/interfaces"
)

const handlerTimeout = 5 * time.Second

// Handler translates HTTP requests into user and blog service calls.
type Handler struct {
	users interfaces.UserService
	blogs interfaces.BlogService
	log   *logrus.Logger
}

func NewHandler(users interfaces.UserService, blogs interfaces.BlogService, log *logrus.Logger) *Handler {
	return &Handler{
		users: users,
		blogs: blogs,
		log:   log,
	}
}

func (h *Handler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), handlerTimeout)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
