package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bloglist-service/internal/application/command"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.CreateUser(ctx, &command.CreateUserCommand{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

func (h *Handler) ListUsers(c echo.Context) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.ListUsers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.FindUserById(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.LoginUser(ctx, &command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Logout revokes the bearer token used for this request.
func (h *Handler) Logout(c echo.Context) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.users.LogoutUser(ctx, &command.LogoutUserCommand{Caller: callerFrom(c)}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
