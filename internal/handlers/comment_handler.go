package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
)

// CommentStore is the comment storage used by the handlers
type CommentStore interface {
	CommentReader
	CreateComment(ctx context.Context, comment *models.Comment) error
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments CommentStore
	posts    PostStore
	events   EventPublisher
	log      *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments CommentStore, posts PostStore, events EventPublisher, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts, events: events, log: log}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
}

// CreateComment comments on a post, or replies to a comment when parent_id is set
func (h *CommentHandler) CreateComment(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.posts.GetPostByID(ctx, req.PostID)
	if err != nil {
		return httpError(err)
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		ID:          uuid.New(),
		CommentType: models.CommentOnPost,
		PostID:      req.PostID,
		AuthorID:    accountID,
		CommentText: req.CommentText,
	}

	if req.ParentID != nil {
		parent, err := h.comments.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			return httpError(err)
		}
		if parent == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		// Replies stay in the thread of the post they were made on.
		if parent.PostID != req.PostID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to another post")
		}
		comment.CommentType = models.CommentOnComment
		comment.ParentID = req.ParentID
	}

	if err := h.comments.CreateComment(ctx, comment); err != nil {
		h.log.Error("create comment", zap.Stringer("author_id", accountID), zap.Error(err))
		return httpError(err)
	}

	if err := h.events.Publish(ctx, accountID, notify.CommentEvent(*comment)); err != nil {
		h.log.Error("publish comment event", zap.Stringer("comment_id", comment.ID), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}
