package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "go-taskbot/cmd/api/router/v1"
	cacheAdapter "go-taskbot/internal/infrastructure/cache/adapter"
	cacheport "go-taskbot/internal/infrastructure/cache/port"
	"go-taskbot/internal/infrastructure/database"
	"go-taskbot/internal/infrastructure/engine"
	"go-taskbot/internal/infrastructure/logger"
	queueAdapter "go-taskbot/internal/infrastructure/queue/adapter"
	qport "go-taskbot/internal/infrastructure/queue/port"
	"go-taskbot/internal/infrastructure/realtime"
	"go-taskbot/internal/pkg/auth/token"
	"go-taskbot/internal/pkg/chat/application/task"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or could not be loaded", "error", err)
	}

	log := logger.NewFromEnv()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.NewPoolFromEnv(connectCtx)
	cancel()
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.Migrate(migrateCtx, pool)
	cancel()
	if err != nil {
		log.Error("failed to run schema migration", "error", err)
		os.Exit(1)
	}

	tokens, err := token.NewManagerFromEnv()
	if err != nil {
		log.Error("failed to configure session tokens", "error", err)
		os.Exit(1)
	}

	eng, err := engine.NewEngineFromEnv(log)
	if err != nil {
		log.Error("failed to configure chat engine", "error", err)
		os.Exit(1)
	}

	// Redis-backed pieces are optional: without them the API runs
	// unthrottled and without async auditing.
	var cache cacheport.Cache
	if redis, err := cacheAdapter.NewRedisAdapter(); err != nil {
		log.Warn("redis unavailable, chat rate limiting disabled", "error", err)
	} else {
		cache = redis
		defer redis.Close()
	}

	var queue qport.Client
	if client, err := queueAdapter.NewAsynqClientFromEnv(); err != nil {
		log.Warn("queue unavailable, tool call auditing disabled", "error", err)
	} else {
		queue = client
		defer client.Close()

		srv, err := queueAdapter.NewAsynqServer(log)
		if err != nil {
			log.Warn("queue worker could not start", "error", err)
		} else {
			task.RegisterAuditToolCallsTask(srv, pool, log)
			go func() {
				if err := srv.Run(ctx); err != nil {
					log.Error("queue worker stopped", "error", err)
				}
			}()
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Stop(stopCtx)
			}()
		}
	}

	hub := realtime.NewHub()
	defer hub.Close()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, v1.Deps{
		Pool:   pool,
		Engine: eng,
		Tokens: tokens,
		Cache:  cache,
		Queue:  queue,
		Hub:    hub,
		Logger: log,
	})

	addr := ":" + envOr("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
