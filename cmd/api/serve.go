package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"Content_Service/internal/config"
	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
	redisrepo "Content_Service/internal/repository/redis"
	"Content_Service/internal/router"
	"Content_Service/internal/service"
	"Content_Service/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the outbox relayer",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := pkg.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(ctx, db, cfg.Database.Driver, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	deps, cleanup, err := buildDeps(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var sender service.Sender
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer func() { _ = producer.Close() }()
		sender = service.KafkaSender(producer)
		log.Info("outbox publishing to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	} else {
		sender = service.LogSender(log)
	}
	relayer := service.NewOutboxRelayer(&database.OutboxRepository{DB: db}, sender, log)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		relayer.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		deps.RateLimiter.Run(ctx)
	}()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.InitRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	wg.Wait()
	return nil
}

// buildDeps wires repositories, optional backends and services.
func buildDeps(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (router.Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	communities := &database.CommunityRepository{DB: db}
	posts := &database.PostRepository{DB: db}
	comments := &database.CommentRepository{DB: db}
	likes := &database.LikeRepository{DB: db}
	events := &database.EventRepository{DB: db}

	var cache service.LikeCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisrepo.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			cleanup()
			return router.Deps{}, nil, fmt.Errorf("redis: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		cache = redisrepo.NewLikeCacheRepository(rdb)
	} else {
		log.Info("redis not configured, like counts read from the database")
	}

	var store service.MediaStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			cleanup()
			return router.Deps{}, nil, fmt.Errorf("s3: %w", err)
		}
		store = s3Store
	} else {
		log.Warn("media storage not configured, uploads disabled")
	}
	media := service.NewMediaService(store, cfg.Storage.Folder, cfg.Server.MaxUploadBytes, log)

	var tokens *pkg.TokenIssuer
	if cfg.Auth.JWTSecret != "" {
		tokens = pkg.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenLifetime())
	}

	deps := router.Deps{
		Communities: service.NewCommunityService(communities, posts, events),
		Posts:       service.NewPostService(posts, communities, media),
		Comments:    service.NewCommentService(comments, posts),
		Likes:       service.NewLikeService(likes, posts, comments, cache, log),
		Events:      service.NewEventService(events, communities),
		Media:       media,
		Health:      func(ctx context.Context) error { return database.Ping(ctx, db) },
		Tokens:      tokens,
		RateLimiter: middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         log,
	}
	return deps, cleanup, nil
}
