package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/internal/repositories"
)

// LikeStore is the like storage used by the handlers
type LikeStore interface {
	CreateLike(ctx context.Context, like *models.Like) error
}

// CommentReader loads a single comment, nil when absent
type CommentReader interface {
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes    LikeStore
	posts    PostStore
	comments CommentReader
	events   EventPublisher
	log      *zap.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes LikeStore, posts PostStore, comments CommentReader, events EventPublisher, log *zap.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, posts: posts, comments: comments, events: events, log: log}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.CreateLike)
}

// CreateLike likes a post or a comment
func (h *LikeHandler) CreateLike(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.ensureTarget(ctx, req.Type, req.ItemID); err != nil {
		return err
	}

	like := &models.Like{
		ID:       uuid.New(),
		AuthorID: accountID,
		Type:     req.Type,
		ItemID:   req.ItemID,
	}
	if err := h.likes.CreateLike(ctx, like); err != nil {
		if errors.Is(err, repositories.ErrAlreadyLiked) {
			return echo.NewHTTPError(http.StatusConflict, "Item already liked")
		}
		h.log.Error("create like", zap.Stringer("author_id", accountID), zap.Error(err))
		return httpError(err)
	}

	if err := h.events.Publish(ctx, accountID, notify.ItemLiked{Like: *like}); err != nil {
		h.log.Error("publish like event", zap.Stringer("like_id", like.ID), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": like})
}

func (h *LikeHandler) ensureTarget(ctx context.Context, typ models.LikeType, itemID string) error {
	switch typ {
	case models.LikeOnPost:
		post, err := h.posts.GetPostByID(ctx, itemID)
		if err != nil {
			return httpError(err)
		}
		if post == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
	case models.LikeOnComment:
		id, err := uuid.Parse(itemID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
		}
		comment, err := h.comments.GetCommentByID(ctx, id)
		if err != nil {
			return httpError(err)
		}
		if comment == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported like type")
	}
	return nil
}
