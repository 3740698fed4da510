package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/chat/application/usecase"
	repoAdapter "go-taskbot/internal/pkg/chat/persistence/repository/adapter"
)

// DeleteConversationController handles the delete-conversation endpoint only
type DeleteConversationController struct {
	uc *usecase.DeleteConversationUseCase
}

func NewDeleteConversationController(pool *pgxpool.Pool) *DeleteConversationController {
	return &DeleteConversationController{uc: usecase.NewDeleteConversationUseCase(repoAdapter.NewPgChatRepository(pool))}
}

// Handle returns a gin handler that deletes a conversation and its messages
func (h *DeleteConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err := h.uc.Execute(ctx, usecase.DeleteConversationInput{
			ConversationID: c.Param("conversationId"),
			UserID:         middleware.CurrentUser(c).ID,
		})
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete conversation"})
		default:
			c.Status(http.StatusNoContent)
		}
	}
}
