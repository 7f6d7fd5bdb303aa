package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
)

// PostStore is the post storage used by the handlers
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts  PostStore
	events EventPublisher
	log    *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts PostStore, events EventPublisher, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, events: events, log: log}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost stores a post and announces it to the author's friends
func (h *PostHandler) CreatePost(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID:  accountID.String(),
		Title:     req.Title,
		PostText:  req.PostText,
		ImagePath: req.ImagePath,
		Tags:      req.Tags,
	}

	ctx := c.Request().Context()
	if err := h.posts.CreatePost(ctx, post); err != nil {
		h.log.Error("create post", zap.Stringer("author_id", accountID), zap.Error(err))
		return httpError(err)
	}

	// Publish failures do not fail the request.
	if err := h.events.Publish(ctx, accountID, notify.PostPublished{Post: *post}); err != nil {
		h.log.Error("publish post event", zap.String("post_id", post.ID.Hex()), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.posts.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}
