package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-taskbot/internal/infrastructure/cache/port"
	qport "go-taskbot/internal/infrastructure/queue/port"
	"go-taskbot/internal/infrastructure/realtime"
	authRepoAdapter "go-taskbot/internal/pkg/auth/persistence/repository/adapter"
	"go-taskbot/internal/pkg/auth/token"
	"go-taskbot/internal/pkg/chat/application/agent"
	"go-taskbot/internal/pkg/chat/presentation/controller"
	"go-taskbot/internal/pkg/chat/presentation/middleware"
)

// Deps carries the infrastructure the chat endpoints need. Cache, queue
// and hub are optional; the endpoints degrade gracefully without them.
type Deps struct {
	Pool   *pgxpool.Pool
	Engine agent.Engine
	Tokens *token.Manager
	Cache  cacheport.Cache
	Queue  qport.Client
	Hub    *realtime.Hub
	Logger *slog.Logger
}

// RegisterRoutes registers chat endpoints under the given router group.
// The group is expected to carry the auth middleware already, except for
// the websocket route which authenticates via query token.
func RegisterRoutes(g *gin.RouterGroup, ws *gin.RouterGroup, d Deps) {
	chatCtl := controller.NewChatController(d.Pool, d.Engine, d.Hub, d.Queue, d.Logger)
	listCtl := controller.NewListConversationsController(d.Pool)
	getCtl := controller.NewGetConversationController(d.Pool)
	deleteCtl := controller.NewDeleteConversationController(d.Pool)

	chatHandlers := []gin.HandlerFunc{chatCtl.Handle()}
	if d.Cache != nil {
		limit := middleware.ChatRateLimitFromEnv()
		chatHandlers = append([]gin.HandlerFunc{middleware.RateLimit(d.Cache, limit, d.Logger)}, chatHandlers...)
	}

	// POST /api/v1/chat -> run one conversational turn
	g.POST("/chat", chatHandlers...)

	// GET /api/v1/conversations -> list the user's conversations
	g.GET("/conversations", listCtl.Handle())

	// GET /api/v1/conversations/:conversationId -> conversation with messages
	g.GET("/conversations/:conversationId", getCtl.Handle())

	// DELETE /api/v1/conversations/:conversationId -> delete conversation
	g.DELETE("/conversations/:conversationId", deleteCtl.Handle())

	if d.Hub != nil {
		socketCtl := controller.NewNotifySocketController(d.Hub, d.Tokens, authRepoAdapter.NewPgUserRepository(d.Pool))

		// GET /api/v1/chat/ws -> websocket for task refresh hints
		ws.GET("/chat/ws", socketCtl.Handle())
	}
}
