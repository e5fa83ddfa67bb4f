package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"bloghub/database"
	"bloghub/internal/api"
	"bloghub/internal/api/handler"
	"bloghub/internal/cache"
	"bloghub/internal/config"
	"bloghub/internal/mailer"
	"bloghub/internal/repository"
	"bloghub/internal/search"
	"bloghub/internal/service"
	"bloghub/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	gormDB, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	db := store.New(gormDB)

	// Search is optional; without a backend the synchronizer no-ops and
	// queries come back empty.
	var backend search.Backend
	if cfg.ElasticsearchURL != "" {
		backend = search.NewElasticBackend(cfg.ElasticsearchURL)
		logger.Info("search index enabled", "url", cfg.ElasticsearchURL)
	} else {
		logger.Warn("no search backend configured, search disabled")
	}
	synchronizer := search.NewSynchronizer(db, backend, logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unavailable, view counts write through", "error", err)
			redisClient = nil
		}
	}

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender, logger)
	}

	users := repository.NewUserRepository(db)
	articles := repository.NewArticleRepository(db)
	comments := repository.NewCommentRepository(db)
	messages := repository.NewMessageRepository(db)
	categories := repository.NewCategoryRepository(db)
	tags := repository.NewTagRepository(db)

	views := cache.NewViewCounter(redisClient, articles, logger)

	authService := service.NewAuthService(users, mail, cfg)
	articleService := service.NewArticleService(articles, views, service.NewArticleSearcher(synchronizer))
	commentService := service.NewCommentService(comments, articles)
	messageService := service.NewMessageService(messages, users, mail)
	categoryService := service.NewCategoryService(categories)
	tagService := service.NewTagService(tags, articles)

	router := api.NewRouter(api.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg),
		Article:  handler.NewArticleHandler(articleService),
		Comment:  handler.NewCommentHandler(commentService),
		Message:  handler.NewMessageHandler(messageService),
		Category: handler.NewCategoryHandler(categoryService),
		Tag:      handler.NewTagHandler(tagService),
	}, authService, users)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go views.Run(ctx, cfg.ViewFlushInterval)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
