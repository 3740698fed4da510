package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/task/application/domain"
	"go-taskbot/internal/pkg/task/application/usecase"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// ListTasksController handles the list-tasks endpoint only (one controller per endpoint)
type ListTasksController struct {
	uc *usecase.ListTasksUseCase
}

func NewListTasksController(repo repository.TaskRepository) *ListTasksController {
	return &ListTasksController{uc: usecase.NewListTasksUseCase(repo)}
}

// Handle returns a gin handler that lists the current user's tasks.
// Accepts ?status=all|pending|completed.
func (h *ListTasksController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		tasks, err := h.uc.Execute(ctx, usecase.ListTasksInput{
			UserID: middleware.CurrentUser(c).ID,
			Status: repository.StatusFilter(c.DefaultQuery("status", "all")),
		})
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tasks"})
		default:
			if tasks == nil {
				tasks = []domain.Task{}
			}
			c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
		}
	}
}
