package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anonto42/nano-midea/socialnet/internal/events"
	"github.com/anonto42/nano-midea/socialnet/internal/friends"
	"github.com/anonto42/nano-midea/socialnet/internal/middleware"
	"github.com/anonto42/nano-midea/socialnet/internal/migrations"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/internal/repositories"
	"github.com/anonto42/nano-midea/socialnet/internal/router"
	"github.com/anonto42/nano-midea/socialnet/pkg/config"
	"github.com/anonto42/nano-midea/socialnet/pkg/firebase"
	"github.com/anonto42/nano-midea/socialnet/pkg/logger"
	"github.com/anonto42/nano-midea/socialnet/validators"
)

const (
	channelBusBuffer = 1024
	shutdownTimeout  = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.Init(logger.Options{Level: cfg.LogLevel, FileName: cfg.LogFile, Env: cfg.Env})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
	lg.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	if err := migrations.Run(sqlDB); err != nil {
		return err
	}
	lg.Info("migrations applied")

	// --- Repositories ---
	accountRepo := repositories.NewPostgresAccountRepository(db.Postgres)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))

	// --- Firebase: push delivery and, optionally, token verification ---
	var fb *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		if fb, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, lg); err != nil {
			return err
		}
	}

	var pusher notify.Pusher = notify.NopPusher{}
	if fb != nil {
		pusher = notify.NewFCMPusher(fb.MessagingClient, lg)
	} else {
		lg.Warn("FIREBASE_CREDENTIALS_PATH not set, push delivery disabled")
	}

	var verifier middleware.TokenVerifier = middleware.NewJWTVerifier(cfg.JWTSecret)
	if cfg.AuthProvider == "firebase" {
		verifier = middleware.NewFirebaseVerifier(fb.AuthClient)
	}

	// --- Engines ---
	recommender := friends.NewRecommender(friendshipRepo, accountRepo, cfg.AgeLimitBottom, cfg.AgeLimitTop, lg)
	searcher := friends.NewSearcher(friendshipRepo, lg)

	dispatcher := notify.NewDispatcher(notify.Sources{
		Accounts:  accountRepo,
		Friends:   friendshipRepo,
		Posts:     postRepo,
		Comments:  commentRepo,
		Birthdays: birthdayStore{accountRepo, notificationRepo},
	}, lg)
	service := notify.NewService(dispatcher, notify.NewSink(notificationRepo), pusher, lg)
	scheduler := notify.NewScheduler(service, cfg.BirthdaySweepInterval, lg)

	var bus events.Bus
	if cfg.EventBusMode == "kafka" {
		bus = events.NewKafkaBus(events.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		}, lg)
	} else {
		bus = events.NewChannelBus(channelBusBuffer, cfg.EventWorkers, lg)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			lg.Error("close event bus", zap.Error(err))
		}
	}()
	lg.Info("event bus ready", zap.String("mode", cfg.EventBusMode))

	// --- HTTP ---
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, lg)
	router.SetupRoutes(e, router.Deps{
		Verifier:      verifier,
		Events:        bus,
		Recommender:   recommender,
		Searcher:      searcher,
		Posts:         postRepo,
		Comments:      commentRepo,
		Likes:         likeRepo,
		Notifications: notificationRepo,
		Log:           lg,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bus.Run(gctx, service.Notify)
	})
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})
	g.Go(func() error {
		lg.Info("http server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// birthdayStore joins the account and notification repositories into the
// dispatcher's birthday source.
type birthdayStore struct {
	*repositories.PostgresAccountRepository
	repositories.NotificationRepository
}
