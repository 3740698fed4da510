package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/task/application/usecase"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// CompleteTaskController handles the complete-task endpoint only (one controller per endpoint)
type CompleteTaskController struct {
	uc *usecase.CompleteTaskUseCase
}

func NewCompleteTaskController(repo repository.TaskRepository) *CompleteTaskController {
	return &CompleteTaskController{uc: usecase.NewCompleteTaskUseCase(repo)}
}

// Handle returns a gin handler that marks a task as completed
func (h *CompleteTaskController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		task, err := h.uc.Execute(ctx, usecase.CompleteTaskInput{
			TaskID: c.Param("taskId"),
			UserID: middleware.CurrentUser(c).ID,
		})
		writeTaskResponse(c, task, err, http.StatusOK)
	}
}
