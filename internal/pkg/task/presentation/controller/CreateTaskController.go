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

// CreateTaskController handles the create-task endpoint only (one controller per endpoint)
type CreateTaskController struct {
	uc *usecase.CreateTaskUseCase
}

func NewCreateTaskController(repo repository.TaskRepository) *CreateTaskController {
	return &CreateTaskController{uc: usecase.NewCreateTaskUseCase(repo)}
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// Handle returns a gin handler that creates a task for the current user
func (h *CreateTaskController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		task, err := h.uc.Execute(ctx, usecase.CreateTaskInput{
			UserID:      middleware.CurrentUser(c).ID,
			Title:       req.Title,
			Description: req.Description,
		})
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		default:
			c.JSON(http.StatusCreated, task)
		}
	}
}
