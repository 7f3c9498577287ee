package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainerrors "bloglist-service/internal/domain/errors"
)

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *createUserRequest) validate() error {
	if r.Username == "" {
		return domainerrors.NewValidationError("username", "is required")
	}
	if r.Password == "" {
		return domainerrors.NewValidationError("password", "is required")
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() error {
	if r.Username == "" || r.Password == "" {
		return domainerrors.NewValidationError("", "username and password are required")
	}
	return nil
}

type blogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Url    string `json:"url"`
	Likes  *int   `json:"likes"`
}

func (r *blogRequest) validate() error {
	if r.Title == "" {
		return domainerrors.NewValidationError("title", "is required")
	}
	if r.Url == "" {
		return domainerrors.NewValidationError("url", "is required")
	}
	return nil
}

type validator interface {
	validate() error
}

// bindBody decodes the JSON body into req and validates it.
func bindBody(c echo.Context, req validator) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domainerrors.NewValidationError("", "malformed request body")
	}
	return req.validate()
}

func pathId(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError("id", "malformatted id")
	}
	return id, nil
}
