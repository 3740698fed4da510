package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	repoAdapter "go-taskbot/internal/pkg/task/persistence/repository/adapter"
	"go-taskbot/internal/pkg/task/presentation/controller"
)

// RegisterRoutes registers task endpoints under the given router group.
// The group is expected to carry the auth middleware already.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	repo := repoAdapter.NewPgTaskRepository(pool)

	createCtl := controller.NewCreateTaskController(repo)
	listCtl := controller.NewListTasksController(repo)
	getCtl := controller.NewGetTaskController(repo)
	updateCtl := controller.NewUpdateTaskController(repo)
	completeCtl := controller.NewCompleteTaskController(repo)
	deleteCtl := controller.NewDeleteTaskController(repo)

	// POST /api/v1/tasks -> create a task
	g.POST("/tasks", createCtl.Handle())

	// GET /api/v1/tasks -> list tasks, optionally filtered by ?status=
	g.GET("/tasks", listCtl.Handle())

	// GET /api/v1/tasks/:taskId -> fetch one task
	g.GET("/tasks/:taskId", getCtl.Handle())

	// PATCH /api/v1/tasks/:taskId -> partial update
	g.PATCH("/tasks/:taskId", updateCtl.Handle())

	// PATCH /api/v1/tasks/:taskId/complete -> mark completed
	g.PATCH("/tasks/:taskId/complete", completeCtl.Handle())

	// DELETE /api/v1/tasks/:taskId -> delete
	g.DELETE("/tasks/:taskId", deleteCtl.Handle())
}
