package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-taskbot/internal/infrastructure/cache/port"
	qport "go-taskbot/internal/infrastructure/queue/port"
	"go-taskbot/internal/infrastructure/realtime"
	authRepoAdapter "go-taskbot/internal/pkg/auth/persistence/repository/adapter"
	authHTTP "go-taskbot/internal/pkg/auth/presentation/http"
	authmw "go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/auth/token"
	"go-taskbot/internal/pkg/chat/application/agent"
	chatHTTP "go-taskbot/internal/pkg/chat/presentation/http"
	taskHTTP "go-taskbot/internal/pkg/task/presentation/http"
)

// Deps is everything the v1 API needs wired in.
type Deps struct {
	Pool   *pgxpool.Pool
	Engine agent.Engine
	Tokens *token.Manager
	Cache  cacheport.Cache
	Queue  qport.Client
	Hub    *realtime.Hub
	Logger *slog.Logger
}

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")

	// Public auth endpoints
	authHTTP.RegisterRoutes(v1, d.Pool, d.Tokens)

	// Everything else requires a valid session
	users := authRepoAdapter.NewPgUserRepository(d.Pool)
	authed := v1.Group("")
	authed.Use(authmw.RequireUser(d.Tokens, users))

	taskHTTP.RegisterRoutes(authed, d.Pool)
	chatHTTP.RegisterRoutes(authed, v1, chatHTTP.Deps{
		Pool:   d.Pool,
		Engine: d.Engine,
		Tokens: d.Tokens,
		Cache:  d.Cache,
		Queue:  d.Queue,
		Hub:    d.Hub,
		Logger: d.Logger,
	})
}
