package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/handlers"
	"github.com/anonto42/nano-midea/socialnet/internal/middleware"
)

// Deps carries everything the routes need. Repositories and engines are
// built once in main.
type Deps struct {
	Verifier      middleware.TokenVerifier
	Events        handlers.EventPublisher
	Recommender   handlers.Recommender
	Searcher      handlers.FriendSearcher
	Posts         handlers.PostStore
	Comments      handlers.CommentStore
	Likes         handlers.LikeStore
	Notifications handlers.NotificationReader
	Log           *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "socialnet"})
	})

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.Auth(d.Verifier))

	handlers.NewFriendshipHandler(d.Recommender, d.Searcher, d.Log).RegisterFriendshipRoutes(api)
	handlers.NewPostHandler(d.Posts, d.Events, d.Log).RegisterPostRoutes(api)
	handlers.NewCommentHandler(d.Comments, d.Posts, d.Events, d.Log).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(d.Likes, d.Posts, d.Comments, d.Events, d.Log).RegisterLikeRoutes(api)
	handlers.NewNotificationHandler(d.Notifications, d.Log).RegisterNotificationRoutes(api)

	d.Log.Info("routes configured", zap.Int("count", len(e.Routes())))
}
