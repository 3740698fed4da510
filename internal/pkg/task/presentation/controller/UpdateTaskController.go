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

// UpdateTaskController handles the update-task endpoint only (one controller per endpoint)
type UpdateTaskController struct {
	uc *usecase.UpdateTaskUseCase
}

func NewUpdateTaskController(repo repository.TaskRepository) *UpdateTaskController {
	return &UpdateTaskController{uc: usecase.NewUpdateTaskUseCase(repo)}
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Handle returns a gin handler that applies a partial update
func (h *UpdateTaskController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		task, err := h.uc.Execute(ctx, usecase.UpdateTaskInput{
			TaskID:      c.Param("taskId"),
			UserID:      middleware.CurrentUser(c).ID,
			Title:       req.Title,
			Description: req.Description,
			Completed:   req.Completed,
		})
		writeTaskResponse(c, task, err, http.StatusOK)
	}
}
