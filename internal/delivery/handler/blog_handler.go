package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bloglist-service/internal/application/command"
	domainerrors "bloglist-service/internal/domain/errors"
)

type statsResponse struct {
	Count      int         `json:"count"`
	Dummy      int         `json:"dummy"`
	TotalLikes int         `json:"totalLikes"`
	Favorite   interface{} `json:"favorite"`
}

func (h *Handler) ListBlogs(c echo.Context) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.ListBlogs(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

// BlogStats reports the list aggregates. An empty list yields an empty
// favorite object rather than null.
func (h *Handler) BlogStats(c echo.Context) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.Stats(ctx)
	if err != nil {
		return err
	}

	var favorite interface{} = struct{}{}
	if res.Favorite != nil {
		favorite = res.Favorite
	}
	return c.JSON(http.StatusOK, statsResponse{
		Count:      res.Count,
		Dummy:      res.Dummy,
		TotalLikes: res.TotalLikes,
		Favorite:   favorite,
	})
}

func (h *Handler) GetBlog(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.FindBlogById(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

func (h *Handler) CreateBlog(c echo.Context) error {
	var req blogRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.CreateBlog(ctx, &command.CreateBlogCommand{
		Title:  req.Title,
		Author: req.Author,
		Url:    req.Url,
		Likes:  req.Likes,
		Caller: callerFrom(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res.Result)
}

func (h *Handler) UpdateBlog(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}
	var req blogRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.UpdateBlog(ctx, &command.UpdateBlogCommand{
		Id:     id,
		Title:  req.Title,
		Author: req.Author,
		Url:    req.Url,
		Likes:  req.Likes,
		Caller: callerFrom(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

func (h *Handler) LikeBlog(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.blogs.LikeBlog(ctx, &command.LikeBlogCommand{Id: id, Caller: callerFrom(c)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Result)
}

// DeleteBlog answers 400 for a blog that does not exist or is already gone.
func (h *Handler) DeleteBlog(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	err = h.blogs.DeleteBlog(ctx, &command.DeleteBlogCommand{Id: id, Caller: callerFrom(c)})
	if errors.Is(err, domainerrors.ErrBlogNotFound) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
