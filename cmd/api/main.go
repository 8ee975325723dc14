package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"chat-relay/cmd/api/router"
	"chat-relay/internal/config"
	cacheadapter "chat-relay/internal/infrastructure/cache/adapter"
	cacheport "chat-relay/internal/infrastructure/cache/port"
	"chat-relay/internal/infrastructure/database"
	queueadapter "chat-relay/internal/infrastructure/queue/adapter"
	qport "chat-relay/internal/infrastructure/queue/port"
	"chat-relay/internal/infrastructure/realtime"
	"chat-relay/internal/pkg/assistant"
	"chat-relay/internal/pkg/chat/application/task"
	chatadapter "chat-relay/internal/pkg/chat/persistence/repository/adapter"
	httpHandler "chat-relay/internal/pkg/chat/presentation/http"
	useradapter "chat-relay/internal/repository/adapter"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	messages := chatadapter.NewPgChatRepository(pool)
	users := useradapter.NewPgUserRepository(pool)
	hub := realtime.NewHub(logger)
	provider := assistant.NewOpenAIProvider(logger, assistant.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	})

	// Redis is optional: without it the transcript cache and its refresh
	// worker are simply disabled.
	var cache cacheport.Cache
	var queue qport.Client
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.RedisURL != "" {
		redisCache, err := cacheadapter.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		cache = redisCache

		asynqClient, err := queueadapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create queue client")
		}
		defer asynqClient.Close()
		queue = asynqClient

		worker, err := queueadapter.NewAsynqServer(cfg.RedisURL, 0, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create queue server")
		}
		task.RegisterRefreshTranscriptTask(worker, messages, cache, logger)
		go func() {
			if err := worker.Run(workerCtx); err != nil {
				logger.Error().Err(err).Msg("queue server stopped")
			}
		}()
	}

	engine := router.New(httpHandler.Deps{
		Messages:      messages,
		Users:         users,
		Hub:           hub,
		Provider:      provider,
		Cache:         cache,
		Queue:         queue,
		Logger:        logger,
		AllowedOrigin: cfg.AllowedOrigin,
		StoreTimeout:  cfg.StoreTimeout,
		AITimeout:     cfg.OpenAITimeout,
	})

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: engine,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("shutting down")
		stopWorker()
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("forced shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
