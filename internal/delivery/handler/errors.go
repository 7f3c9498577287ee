package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	domainerrors "bloglist-service/internal/domain/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case domainerrors.IsValidation(err), errors.Is(err, domainerrors.ErrUsernameTaken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domainerrors.ErrBlogNotFound), errors.Is(err, domainerrors.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domainerrors.ErrTooManyRequests):
		return http.StatusTooManyRequests, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorResponse{Error: message})
	}
	if err != nil {
		h.log.WithError(err).Warn("failed to write error response")
	}
}
