package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-taskbot/internal/pkg/auth/presentation/middleware"
	"go-taskbot/internal/pkg/task/application/usecase"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// GetTaskController handles the get-task endpoint only (one controller per endpoint)
type GetTaskController struct {
	uc *usecase.GetTaskUseCase
}

func NewGetTaskController(repo repository.TaskRepository) *GetTaskController {
	return &GetTaskController{uc: usecase.NewGetTaskUseCase(repo)}
}

// Handle returns a gin handler that fetches one task
func (h *GetTaskController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		task, err := h.uc.Execute(ctx, usecase.GetTaskInput{
			TaskID: c.Param("taskId"),
			UserID: middleware.CurrentUser(c).ID,
		})
		writeTaskResponse(c, task, err, http.StatusOK)
	}
}

// writeTaskResponse maps the shared task use case errors onto HTTP codes.
func writeTaskResponse(c *gin.Context, body any, err error, okStatus int) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this task"})
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task operation failed"})
	case body == nil:
		c.Status(okStatus)
	default:
		c.JSON(okStatus, body)
	}
}
