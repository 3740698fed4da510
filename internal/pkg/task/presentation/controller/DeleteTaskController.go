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

// DeleteTaskController handles the delete-task endpoint only (one controller per endpoint)
type DeleteTaskController struct {
	uc *usecase.DeleteTaskUseCase
}

func NewDeleteTaskController(repo repository.TaskRepository) *DeleteTaskController {
	return &DeleteTaskController{uc: usecase.NewDeleteTaskUseCase(repo)}
}

// Handle returns a gin handler that deletes a task
func (h *DeleteTaskController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err := h.uc.Execute(ctx, usecase.DeleteTaskInput{
			TaskID: c.Param("taskId"),
			UserID: middleware.CurrentUser(c).ID,
		})
		writeTaskResponse(c, nil, err, http.StatusNoContent)
	}
}
