package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	chat "go-taskbot/internal/pkg/chat/application/domain"
	"go-taskbot/internal/pkg/chat/application/usecase"
	repoAdapter "go-taskbot/internal/pkg/chat/persistence/repository/adapter"
)

// ListConversationsController handles the list-conversations endpoint only
type ListConversationsController struct {
	uc *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	return &ListConversationsController{uc: usecase.NewListConversationsUseCase(repoAdapter.NewPgChatRepository(pool))}
}

// Handle returns a gin handler that lists the current user's conversations
func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		convs, err := h.uc.Execute(ctx, usecase.ListConversationsInput{
			UserID: middleware.CurrentUser(c).ID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversations"})
			return
		}
		if convs == nil {
			convs = []chat.Conversation{}
		}
		c.JSON(http.StatusOK, gin.H{"conversations": convs, "total": len(convs)})
	}
}
