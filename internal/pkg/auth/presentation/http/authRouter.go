package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	repoAdapter "go-taskbot/internal/pkg/auth/persistence/repository/adapter"
	"go-taskbot/internal/pkg/auth/presentation/controller"
	"go-taskbot/internal/pkg/auth/token"
)

// RegisterRoutes registers auth endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, tokens *token.Manager) {
	repo := repoAdapter.NewPgUserRepository(pool)

	registerCtl := controller.NewRegisterController(repo, tokens)
	loginCtl := controller.NewLoginController(repo, tokens)

	// POST /api/v1/auth/register -> create an account
	g.POST("/auth/register", registerCtl.Handle())

	// POST /api/v1/auth/login -> exchange credentials for a token
	g.POST("/auth/login", loginCtl.Handle())
}
