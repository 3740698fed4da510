package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-taskbot/internal/infrastructure/realtime"
	repository "go-taskbot/internal/pkg/auth/persistence/repository/port"
	"go-taskbot/internal/pkg/auth/token"
)

// NotifySocketController handles the websocket endpoint that pushes
// refresh hints to the client. Traffic is strictly one-way: the server
// never acts on frames received from the socket.
type NotifySocketController struct {
	hub    *realtime.Hub
	tokens *token.Manager
	users  repository.UserRepository
}

func NewNotifySocketController(hub *realtime.Hub, tokens *token.Manager, users repository.UserRepository) *NotifySocketController {
	return &NotifySocketController{hub: hub, tokens: tokens, users: users}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when the
		// frontend origin is pinned down.
		return true
	},
}

const socketReadTimeout = 60 * time.Second

// Handle upgrades the connection and keeps it attached until the client
// disconnects. Auth rides in the token query param because browsers
// cannot set headers on websocket handshakes.
func (ctl *NotifySocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
			return
		}
		claims, err := ctl.tokens.Verify(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		user, err := ctl.users.FindByID(ctx, claims.UserID)
		cancel()
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(user.ID, ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		if payload, err := json.Marshal(gin.H{"type": "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		ws.SetReadLimit(1 << 10)
		_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		})

		// Drain the read side so pings and close frames get processed;
		// inbound payloads are ignored.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		}
	}
}
