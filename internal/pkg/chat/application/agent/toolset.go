package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// Schema describes one tool in JSON-schema form, ready to hand to an
// OpenAI-compatible engine.
type Schema struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Toolset exposes the task operations the engine may invoke during a
// turn. Every call is scoped to one user; a task owned by someone else
// is indistinguishable from a missing one.
type Toolset struct {
	userID string
	repo   repository.TaskRepository
}

func NewToolset(userID string, repo repository.TaskRepository) *Toolset {
	return &Toolset{userID: userID, repo: repo}
}

var toolSchemas = []Schema{
	{
		Name:        "add_task",
		Description: "Create a new task for the user.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "The task title (1-200 chars)"},
				"description": {"type": "string", "description": "Optional task description"}
			},
			"required": ["title"]
		}`),
	},
	{
		Name:        "list_tasks",
		Description: "List tasks for the current user.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"status": {"type": "string", "enum": ["all", "pending", "completed"], "description": "Filter by status"}
			}
		}`),
	},
	{
		Name:        "get_task",
		Description: "Get details of a specific task.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task_id": {"type": "string", "description": "The task ID"}
			},
			"required": ["task_id"]
		}`),
	},
	{
		Name:        "update_task",
		Description: "Update an existing task's title or description.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task_id": {"type": "string", "description": "The task ID to update"},
				"title": {"type": "string", "description": "New title (optional)"},
				"description": {"type": "string", "description": "New description (optional)"}
			},
			"required": ["task_id"]
		}`),
	},
	{
		Name:        "complete_task",
		Description: "Mark a task as completed.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task_id": {"type": "string", "description": "The task ID"}
			},
			"required": ["task_id"]
		}`),
	},
	{
		Name:        "delete_task",
		Description: "Delete a task permanently.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task_id": {"type": "string", "description": "The task ID"}
			},
			"required": ["task_id"]
		}`),
	},
}

// Schemas returns the tool definitions in a stable order.
func (t *Toolset) Schemas() []Schema {
	return toolSchemas
}

// Execute runs one named tool with raw JSON arguments and returns its
// payload. Missing or foreign tasks produce an error payload, not a Go
// error; a Go error means the tool itself could not run.
func (t *Toolset) Execute(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "add_task":
		return t.addTask(ctx, args)
	case "list_tasks":
		return t.listTasks(ctx, args)
	case "get_task":
		return t.getTask(ctx, args)
	case "update_task":
		return t.updateTask(ctx, args)
	case "complete_task":
		return t.completeTask(ctx, args)
	case "delete_task":
		return t.deleteTask(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

func notFoundPayload(taskID string) map[string]any {
	return map[string]any{"error": "Task not found", "task_id": taskID}
}

func (t *Toolset) addTask(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, fmt.Errorf("add_task: %w", err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("add_task: title is required")
	}

	title := domain.TruncateTitle(in.Title)
	desc := in.Description
	if desc != nil {
		d := domain.TruncateDescription(*desc)
		desc = &d
	}

	task, err := t.repo.Create(ctx, t.userID, title, desc)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id": task.ID,
		"status":  "created",
		"title":   task.Title,
	}, nil
}

func (t *Toolset) listTasks(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Status string `json:"status"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("list_tasks: %w", err)
		}
	}

	status := repository.StatusFilter(in.Status)
	switch status {
	case repository.StatusPending, repository.StatusCompleted:
	default:
		status = repository.StatusAll
	}

	tasks, err := t.repo.ListByUser(ctx, t.userID, status)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, map[string]any{
			"id":          task.ID,
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
		})
	}
	return out, nil
}

func (t *Toolset) getTask(ctx context.Context, args json.RawMessage) (any, error) {
	taskID, err := parseTaskID(args, "get_task")
	if err != nil {
		return nil, err
	}
	task, payload, err := t.findOwned(ctx, taskID)
	if err != nil || payload != nil {
		return payload, err
	}
	return map[string]any{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}, nil
}

func (t *Toolset) updateTask(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		TaskID      string  `json:"task_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, fmt.Errorf("update_task: %w", err)
	}
	if !validTaskID(in.TaskID) {
		return notFoundPayload(in.TaskID), nil
	}

	fields := repository.UpdateFields{}
	if in.Title != nil {
		title := domain.TruncateTitle(*in.Title)
		fields.Title = &title
	}
	if in.Description != nil {
		d := domain.TruncateDescription(*in.Description)
		fields.Description = &d
	}

	task, err := t.repo.Update(ctx, in.TaskID, t.userID, fields)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return notFoundPayload(in.TaskID), nil
	}
	return map[string]any{
		"task_id": task.ID,
		"status":  "updated",
		"title":   task.Title,
	}, nil
}

func (t *Toolset) completeTask(ctx context.Context, args json.RawMessage) (any, error) {
	taskID, err := parseTaskID(args, "complete_task")
	if err != nil {
		return nil, err
	}
	if !validTaskID(taskID) {
		return notFoundPayload(taskID), nil
	}

	task, err := t.repo.Complete(ctx, taskID, t.userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return notFoundPayload(taskID), nil
	}
	return map[string]any{
		"task_id": task.ID,
		"status":  "completed",
		"title":   task.Title,
	}, nil
}

func (t *Toolset) deleteTask(ctx context.Context, args json.RawMessage) (any, error) {
	taskID, err := parseTaskID(args, "delete_task")
	if err != nil {
		return nil, err
	}
	task, payload, err := t.findOwned(ctx, taskID)
	if err != nil || payload != nil {
		return payload, err
	}

	deleted, err := t.repo.Delete(ctx, taskID, t.userID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return notFoundPayload(taskID), nil
	}
	return map[string]any{
		"task_id": taskID,
		"status":  "deleted",
		"title":   task.Title,
	}, nil
}

// findOwned resolves a task scoped to the toolset's user. The payload is
// non-nil when the task is missing or foreign.
func (t *Toolset) findOwned(ctx context.Context, taskID string) (*domain.Task, map[string]any, error) {
	if !validTaskID(taskID) {
		return nil, notFoundPayload(taskID), nil
	}
	task, err := t.repo.FindByIDAndUser(ctx, taskID, t.userID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, notFoundPayload(taskID), nil
	}
	return task, nil, nil
}

func parseTaskID(args json.RawMessage, tool string) (string, error) {
	var in struct {
		TaskID string `json:"task_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("%s: %w", tool, err)
	}
	return in.TaskID, nil
}

// validTaskID rejects IDs that cannot be a UUID so the database never
// sees a bad cast.
func validTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
