package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodb "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/db/mongo"
	transport "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/middleware"
	appjwt "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/jwt"
	authsvc "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/service"
	bmsvc "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/bookmark/service"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/infra/log"
	"golang.org/x/sync/errgroup"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	client, err := mongodb.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			zapLog.Error("mongo disconnect", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	userRepo := mongodb.NewMongoUserRepo(db)
	bookmarkRepo := mongodb.NewMongoBookmarkRepo(db)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		zapLog.Fatal("ensure indexes", zap.Error(err))
	}

	tokens, err := appjwt.NewTokenManager(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token manager", zap.Error(err))
	}

	validate := validator.New()
	auth := authsvc.New(userRepo, tokens, validate)
	bookmarks := bmsvc.New(bookmarkRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLog))

	corsConfig := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	handler := transport.NewHandler(auth, bookmarks, zapLog)
	handler.RegisterRoutes(router, tokens, middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	var g errgroup.Group

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
