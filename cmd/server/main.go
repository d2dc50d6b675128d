package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mindprofile/internal/cache"
	"mindprofile/internal/config"
	"mindprofile/internal/repository"
	"mindprofile/internal/service"
	"mindprofile/internal/transport/rest"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	if cfg.AI.IsEnabled() {
		logger.Infow("AI evaluation enabled", "model", cfg.AI.Model)
	} else {
		logger.Warn("AI_API_KEY not set, evaluations will use the default profile")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatalw("mongo connect failed", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatalw("mongo ping failed", "error", err)
	}
	logger.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisURI, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatalw("redis ping failed", "error", err)
	}
	logger.Info("connected to Redis")

	// Repositories
	questionRepo := repository.NewQuestionRepo(db)
	resultRepo := repository.NewResultRepo(db)
	userRepo := repository.NewUserRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	for _, ensure := range []func(context.Context) error{
		questionRepo.EnsureIndexes,
		resultRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatalw("index creation failed", "error", err)
		}
	}

	// Caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	snapshotCache := cache.NewSnapshotCache(rdb, cfg.SnapshotTTL)

	// Services
	userSvc := service.NewUserService(userRepo, logger)
	captcha := service.NewCaptchaVerifier(&cfg.Recaptcha, logger)
	authSvc := service.NewAuthService(userSvc, captcha, sessionCache, cfg.JWTSecret, cfg.SessionTTL, logger)
	catalogSvc := service.NewCatalogService(questionRepo, logger)
	evaluator := service.NewEvaluatorService(&cfg.AI, logger)
	assessmentSvc := service.NewAssessmentService(catalogSvc, resultRepo, snapshotCache, evaluator, logger)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, logger)
	adminSvc := service.NewAdminService(resultRepo, feedbackSvc)

	if err := userSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalw("admin bootstrap failed", "error", err)
	}

	router := rest.NewRouter(&rest.Container{
		AuthService:       authSvc,
		CatalogService:    catalogSvc,
		AssessmentService: assessmentSvc,
		UserService:       userSvc,
		FeedbackService:   feedbackSvc,
		AdminService:      adminSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("listen failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalw("forced shutdown", "error", err)
	}

	logger.Info("server exited")
}
