package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bloglist-service/internal/infrastructure"
)

// NewRouter wires every route. loginLimiter may be nil to disable login
// throttling.
func NewRouter(h *Handler, loginLimiter *infrastructure.RateLimiter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// RealIP is the peer address; X-Forwarded-For is ignored.
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = h.handleError

	e.Use(middleware.RequestID())
	e.Use(h.logRequests)
	e.Use(middleware.Recover())

	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.POST("/login", h.Login, rateLimit(loginLimiter))
	api.POST("/logout", h.Logout, h.requireAuth)

	api.GET("/blogs", h.ListBlogs)
	api.GET("/blogs/stats", h.BlogStats)
	api.GET("/blogs/:id", h.GetBlog)
	api.POST("/blogs", h.CreateBlog, h.requireAuth)
	api.PUT("/blogs/:id", h.UpdateBlog, h.requireAuth)
	api.POST("/blogs/:id/like", h.LikeBlog, h.requireAuth)
	api.DELETE("/blogs/:id", h.DeleteBlog, h.requireAuth)

	return e
}
