package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/server"
	"github.com/foodgram/backend/internal/service"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func main() {
	color.New(color.FgHiGreen, color.Bold).Println("Foodgram API")
	color.New(color.FgHiBlack).Println("recipes, favorites and shopping lists")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading config")
	}
	setupLogging(cfg)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to database")
	}
	store := repository.New(db)

	var redisClient *redis.Client
	if redisClient, err = database.NewRedisClient(cfg); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting falls back to in-process limiter")
		redisClient = nil
	}

	imageStore, err := newImageStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when configuring image storage")
	}

	access, err := service.NewAccessPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading access policy")
	}
	authService := service.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL)

	deps := &api.Dependencies{
		Store:       store,
		Auth:        authService,
		Recipes:     service.NewRecipeService(store, service.NewImageService(imageStore), access),
		Relations:   service.NewRelationService(store, access),
		Shopping:    service.NewShoppingListService(store, access),
		Reference:   service.NewReferenceService(store, access),
		RateLimiter: middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreateLimit, cfg.RecipeCreateWindow),
		PageSize:    cfg.PageSize,
	}

	opts := router.Options{CORSOrigins: cfg.CORSOrigins}
	if cfg.ImageStore == "local" {
		opts.MediaDir = cfg.MediaDir
		opts.MediaPath = mediaPath(cfg.MediaURL)
	}
	srv := server.New(cfg.Addr(), router.SetupRouter(deps, opts))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		gin.SetMode(gin.ReleaseMode)
	}
}

func newImageStore(cfg *config.Config) (service.ImageStore, error) {
	if cfg.ImageStore == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("bucket", s3Config.BucketName).Msg("Storing images in S3")
		return service.NewS3ImageStore(s3Config), nil
	}
	log.Info().Str("dir", cfg.MediaDir).Msg("Storing images on local disk")
	return service.NewLocalImageStore(cfg.MediaDir, cfg.MediaURL), nil
}

// mediaPath is the route prefix local images are served under; MEDIA_URL
// may be a bare path or an absolute URL
func mediaPath(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil || u.Path == "" {
		return "/media"
	}
	return u.Path
}
