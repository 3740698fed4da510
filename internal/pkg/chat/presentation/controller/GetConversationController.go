package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	chat "go-taskbot/internal/pkg/chat/application/domain"
	"go-taskbot/internal/pkg/chat/application/usecase"
	repoAdapter "go-taskbot/internal/pkg/chat/persistence/repository/adapter"
)

// GetConversationController handles the get-conversation endpoint only
type GetConversationController struct {
	uc *usecase.GetConversationUseCase
}

func NewGetConversationController(pool *pgxpool.Pool) *GetConversationController {
	return &GetConversationController{uc: usecase.NewGetConversationUseCase(repoAdapter.NewPgChatRepository(pool))}
}

// Handle returns a gin handler that fetches a conversation with its messages.
// A conversation owned by someone else looks exactly like a missing one.
func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		out, err := h.uc.Execute(ctx, usecase.GetConversationInput{
			ConversationID: c.Param("conversationId"),
			UserID:         middleware.CurrentUser(c).ID,
		})
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load conversation"})
		default:
			msgs := out.Messages
			if msgs == nil {
				msgs = []chat.Message{}
			}
			c.JSON(http.StatusOK, gin.H{
				"conversation": out.Conversation,
				"messages":     msgs,
			})
		}
	}
}
