package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "go-taskbot/internal/infrastructure/queue/port"
	"go-taskbot/internal/infrastructure/realtime"
	"go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/chat/application/agent"
	"go-taskbot/internal/pkg/chat/application/task"
	"go-taskbot/internal/pkg/chat/application/usecase"
	repoAdapter "go-taskbot/internal/pkg/chat/persistence/repository/adapter"
	taskRepoAdapter "go-taskbot/internal/pkg/task/persistence/repository/adapter"
)

// ChatController handles the send-chat-message endpoint only (one controller per endpoint)
type ChatController struct {
	uc     *usecase.SendChatMessageUseCase
	hub    *realtime.Hub
	queue  qport.Client
	logger *slog.Logger
}

// NewChatController wires the turn use case. hub and queue may be nil;
// refresh hints and auditing degrade to no-ops without them.
func NewChatController(pool *pgxpool.Pool, eng agent.Engine, hub *realtime.Hub, queue qport.Client, logger *slog.Logger) *ChatController {
	repo := repoAdapter.NewPgChatRepository(pool)
	taskRepo := taskRepoAdapter.NewPgTaskRepository(pool)
	return &ChatController{
		uc:     usecase.NewSendChatMessageUseCase(repo, taskRepo, eng, logger),
		hub:    hub,
		queue:  queue,
		logger: logger,
	}
}

type chatRequest struct {
	ConversationID *string `json:"conversation_id"`
	Message        string  `json:"message" binding:"required"`
}

type chatResponse struct {
	ConversationID string                 `json:"conversation_id"`
	Response       string                 `json:"response"`
	ToolCalls      []agent.ToolCallRecord `json:"tool_calls"`
}

// Handle returns a gin handler that runs one conversational turn
func (h *ChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user := middleware.CurrentUser(c)
		out, err := h.uc.Execute(c.Request.Context(), usecase.SendChatMessageInput{
			UserID:         user.ID,
			ConversationID: req.ConversationID,
			Message:        req.Message,
		})
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		case errors.Is(err, usecase.ErrEngineTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "AI service timeout. Please try again."})
			return
		case errors.Is(err, usecase.ErrEngineFailure):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "I'm having trouble processing your request. Please try again."})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
			return
		}

		if len(out.ToolCalls) > 0 {
			h.notifyTasksChanged(user.ID, out.ConversationID)
			h.enqueueAudit(c.Request.Context(), user.ID, out)
		}

		toolCalls := out.ToolCalls
		if toolCalls == nil {
			toolCalls = []agent.ToolCallRecord{}
		}
		c.JSON(http.StatusOK, chatResponse{
			ConversationID: out.ConversationID,
			Response:       out.Response,
			ToolCalls:      toolCalls,
		})
	}
}

// notifyTasksChanged pushes a refresh hint to the user's live socket, if any.
func (h *ChatController) notifyTasksChanged(userID, conversationID string) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(gin.H{
		"type":            "tasks_changed",
		"conversation_id": conversationID,
	})
	if err != nil {
		return
	}
	h.hub.NotifyUser(userID, payload)
}

// enqueueAudit records the turn's tool calls asynchronously. Best
// effort: a queue outage never fails the chat response.
func (h *ChatController) enqueueAudit(ctx context.Context, userID string, out *usecase.SendChatMessageOutput) {
	if h.queue == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := task.EnqueueAuditToolCalls(ctx, h.queue, task.AuditToolCallsTaskPayload{
		UserID:         userID,
		ConversationID: out.ConversationID,
		ToolCalls:      out.ToolCalls,
	})
	if err != nil {
		h.logger.Warn("could not enqueue tool call audit", "conversation_id", out.ConversationID, "error", err)
	}
}
