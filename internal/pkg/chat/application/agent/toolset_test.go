package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// fakeTaskRepo is an in-memory TaskRepository for toolset tests.
type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

var _ repository.TaskRepository = (*fakeTaskRepo)(nil)

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*domain.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, userID, title string, description *string) (*domain.Task, error) {
	t := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID string, status repository.StatusFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if status == repository.StatusPending && t.Completed {
			continue
		}
		if status == repository.StatusCompleted && !t.Completed {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	return f.tasks[id], nil
}

func (f *fakeTaskRepo) FindByIDAndUser(_ context.Context, id, userID string) (*domain.Task, error) {
	t := f.tasks[id]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id, userID string, fields repository.UpdateFields) (*domain.Task, error) {
	t, _ := f.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = fields.Description
	}
	if fields.Completed != nil {
		t.Completed = *fields.Completed
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func (f *fakeTaskRepo) Complete(_ context.Context, id, userID string) (*domain.Task, error) {
	t, _ := f.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	t.Completed = true
	return t, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	t, _ := f.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return false, nil
	}
	delete(f.tasks, id)
	return true, nil
}

func (f *fakeTaskRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range f.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func TestToolsetSchemas(t *testing.T) {
	ts := NewToolset("u1", newFakeTaskRepo())

	var names []string
	for _, s := range ts.Schemas() {
		names = append(names, s.Name)
		require.True(t, json.Valid(s.Parameters), "parameters of %s must be valid JSON", s.Name)
	}
	require.Equal(t, []string{"add_task", "list_tasks", "get_task", "update_task", "complete_task", "delete_task"}, names)
}

func TestAddTask(t *testing.T) {
	repo := newFakeTaskRepo()
	ts := NewToolset("u1", repo)

	out, err := ts.Execute(context.Background(), "add_task", json.RawMessage(`{"title": "Buy groceries"}`))
	require.NoError(t, err)

	payload := out.(map[string]any)
	require.Equal(t, "created", payload["status"])
	require.Equal(t, "Buy groceries", payload["title"])
	require.NotEmpty(t, payload["task_id"])

	n, _ := repo.CountByUser(context.Background(), "u1")
	require.Equal(t, 1, n)
}

func TestAddTaskTruncatesTitle(t *testing.T) {
	ts := NewToolset("u1", newFakeTaskRepo())

	long := strings.Repeat("x", 300)
	out, err := ts.Execute(context.Background(), "add_task", mustArgs(t, map[string]any{"title": long}))
	require.NoError(t, err)

	payload := out.(map[string]any)
	require.Len(t, payload["title"], domain.TitleMaxLen)
}

func TestGetTaskNotFound(t *testing.T) {
	ts := NewToolset("u1", newFakeTaskRepo())

	missing := uuid.NewString()
	out, err := ts.Execute(context.Background(), "get_task", mustArgs(t, map[string]any{"task_id": missing}))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"error": "Task not found", "task_id": missing}, out)
}

func TestGetTaskMalformedIDLooksMissing(t *testing.T) {
	ts := NewToolset("u1", newFakeTaskRepo())

	out, err := ts.Execute(context.Background(), "get_task", json.RawMessage(`{"task_id": "not-a-uuid"}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"error": "Task not found", "task_id": "not-a-uuid"}, out)
}

func TestForeignTaskLooksMissing(t *testing.T) {
	repo := newFakeTaskRepo()
	other, err := repo.Create(context.Background(), "someone-else", "secret", nil)
	require.NoError(t, err)

	ts := NewToolset("u1", repo)
	out, err := ts.Execute(context.Background(), "delete_task", mustArgs(t, map[string]any{"task_id": other.ID}))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"error": "Task not found", "task_id": other.ID}, out)

	// And the foreign task survives
	n, _ := repo.CountByUser(context.Background(), "someone-else")
	require.Equal(t, 1, n)
}

func TestCompleteTask(t *testing.T) {
	repo := newFakeTaskRepo()
	created, err := repo.Create(context.Background(), "u1", "report", nil)
	require.NoError(t, err)

	ts := NewToolset("u1", repo)
	out, err := ts.Execute(context.Background(), "complete_task", mustArgs(t, map[string]any{"task_id": created.ID}))
	require.NoError(t, err)

	payload := out.(map[string]any)
	require.Equal(t, "completed", payload["status"])
	require.True(t, repo.tasks[created.ID].Completed)
}

func TestListTasksStatusFilter(t *testing.T) {
	repo := newFakeTaskRepo()
	done, _ := repo.Create(context.Background(), "u1", "done one", nil)
	repo.tasks[done.ID].Completed = true
	_, _ = repo.Create(context.Background(), "u1", "pending one", nil)

	ts := NewToolset("u1", repo)
	out, err := ts.Execute(context.Background(), "list_tasks", json.RawMessage(`{"status": "pending"}`))
	require.NoError(t, err)

	list := out.([]map[string]any)
	require.Len(t, list, 1)
	require.Equal(t, "pending one", list[0]["title"])
}

func TestListTasksUnknownStatusFallsBackToAll(t *testing.T) {
	repo := newFakeTaskRepo()
	_, _ = repo.Create(context.Background(), "u1", "a", nil)
	_, _ = repo.Create(context.Background(), "u1", "b", nil)

	ts := NewToolset("u1", repo)
	out, err := ts.Execute(context.Background(), "list_tasks", json.RawMessage(`{"status": "bogus"}`))
	require.NoError(t, err)
	require.Len(t, out.([]map[string]any), 2)
}

func TestUpdateTask(t *testing.T) {
	repo := newFakeTaskRepo()
	created, _ := repo.Create(context.Background(), "u1", "old title", nil)

	ts := NewToolset("u1", repo)
	out, err := ts.Execute(context.Background(), "update_task", mustArgs(t, map[string]any{
		"task_id": created.ID,
		"title":   "new title",
	}))
	require.NoError(t, err)

	payload := out.(map[string]any)
	require.Equal(t, "updated", payload["status"])
	require.Equal(t, "new title", payload["title"])
}

func TestUnknownToolErrors(t *testing.T) {
	ts := NewToolset("u1", newFakeTaskRepo())

	_, err := ts.Execute(context.Background(), "launch_rocket", json.RawMessage(`{}`))
	require.Error(t, err)
}

func mustArgs(t *testing.T, m map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}
