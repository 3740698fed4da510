package engine

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-taskbot/internal/pkg/chat/application/agent"
	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// memTaskRepo is a minimal TaskRepository for driving the tool loop.
type memTaskRepo struct {
	tasks map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*domain.Task{}}
}

func (m *memTaskRepo) Create(_ context.Context, userID, title string, description *string) (*domain.Task, error) {
	t := &domain.Task{ID: uuid.NewString(), UserID: userID, Title: title, Description: description, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) ListByUser(_ context.Context, userID string, _ repository.StatusFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	return m.tasks[id], nil
}

func (m *memTaskRepo) FindByIDAndUser(_ context.Context, id, userID string) (*domain.Task, error) {
	t := m.tasks[id]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (m *memTaskRepo) Update(_ context.Context, id, userID string, fields repository.UpdateFields) (*domain.Task, error) {
	t, _ := m.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	return t, nil
}

func (m *memTaskRepo) Complete(_ context.Context, id, userID string) (*domain.Task, error) {
	t, _ := m.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	t.Completed = true
	return t, nil
}

func (m *memTaskRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	t, _ := m.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

func (m *memTaskRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range m.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func respondCompletion(t *testing.T, w http.ResponseWriter, msg openaiMessage) {
	t.Helper()
	err := json.NewEncoder(w).Encode(openaiResponse{
		Choices: []openaiChoice{{Message: msg}},
	})
	require.NoError(t, err)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunPlainResponse(t *testing.T) {
	var got openaiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		respondCompletion(t, w, openaiMessage{Role: "assistant", Content: "hello there"})
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("test-key", "test-model", srv.URL, testLogger())
	res, err := eng.Run(context.Background(), agent.Request{
		Instructions: "be helpful",
		Messages:     []agent.TurnMessage{{Role: "user", Content: "hi"}},
		Tools:        agent.NewToolset("u1", newMemTaskRepo()),
	})
	require.NoError(t, err)
	require.Equal(t, "hello there", res.Output)
	require.Empty(t, res.Trace)

	// System instructions go first, then the turn
	require.Equal(t, "test-model", got.Model)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "be helpful", got.Messages[0].Content)
	require.Equal(t, "user", got.Messages[1].Role)
	require.Len(t, got.Tools, 6)
}

func TestRunToolLoop(t *testing.T) {
	repo := newMemTaskRepo()
	call := 0
	var secondReq openaiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		switch call {
		case 1:
			respondCompletion(t, w, openaiMessage{
				Role: "assistant",
				ToolCalls: []openaiToolCall{{
					ID:   "call-1",
					Type: "function",
					Function: openaiToolCallFunction{
						Name:      "add_task",
						Arguments: `{"title": "Buy milk"}`,
					},
				}},
			})
		default:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&secondReq))
			respondCompletion(t, w, openaiMessage{Role: "assistant", Content: "Added it!"})
		}
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("k", "m", srv.URL, testLogger())
	res, err := eng.Run(context.Background(), agent.Request{
		Messages: []agent.TurnMessage{{Role: "user", Content: "add milk"}},
		Tools:    agent.NewToolset("u1", repo),
	})
	require.NoError(t, err)
	require.Equal(t, "Added it!", res.Output)

	// The tool actually ran
	n, _ := repo.CountByUser(context.Background(), "u1")
	require.Equal(t, 1, n)

	// Trace carries the invocation and its output
	require.Len(t, res.Trace, 2)
	require.Equal(t, agent.TraceFunctionCall, res.Trace[0].Kind)
	require.Equal(t, "add_task", res.Trace[0].Tool)
	require.Equal(t, map[string]any{"title": "Buy milk"}, res.Trace[0].Args)
	require.Equal(t, agent.TraceFunctionOutput, res.Trace[1].Kind)
	require.Equal(t, "created", res.Trace[1].Output["status"])

	// Second request replays the assistant tool call plus a tool message
	last := secondReq.Messages[len(secondReq.Messages)-1]
	require.Equal(t, "tool", last.Role)
	require.Equal(t, "call-1", last.ToolCallID)
	require.Contains(t, last.Content, "created")
}

func TestRunToolFailureBecomesErrorPayload(t *testing.T) {
	call := 0
	var secondReq openaiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		switch call {
		case 1:
			respondCompletion(t, w, openaiMessage{
				Role: "assistant",
				ToolCalls: []openaiToolCall{{
					ID:   "call-1",
					Type: "function",
					Function: openaiToolCallFunction{
						Name:      "no_such_tool",
						Arguments: `{}`,
					},
				}},
			})
		default:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&secondReq))
			respondCompletion(t, w, openaiMessage{Role: "assistant", Content: "sorry"})
		}
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("k", "m", srv.URL, testLogger())
	res, err := eng.Run(context.Background(), agent.Request{
		Messages: []agent.TurnMessage{{Role: "user", Content: "hi"}},
		Tools:    agent.NewToolset("u1", newMemTaskRepo()),
	})
	require.NoError(t, err)
	require.Equal(t, "sorry", res.Output)

	last := secondReq.Messages[len(secondReq.Messages)-1]
	require.Contains(t, last.Content, "tool execution failed")
}

func TestRunUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("k", "m", srv.URL, testLogger())
	_, err := eng.Run(context.Background(), agent.Request{
		Messages: []agent.TurnMessage{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestRunIterationCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondCompletion(t, w, openaiMessage{
			Role: "assistant",
			ToolCalls: []openaiToolCall{{
				ID:       "loop",
				Type:     "function",
				Function: openaiToolCallFunction{Name: "list_tasks", Arguments: `{}`},
			}},
		})
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("k", "m", srv.URL, testLogger())
	_, err := eng.Run(context.Background(), agent.Request{
		Messages: []agent.TurnMessage{{Role: "user", Content: "loop forever"}},
		Tools:    agent.NewToolset("u1", newMemTaskRepo()),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "iterations")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect, canceling the request context.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	eng := NewOpenRouterEngine("k", "m", srv.URL, testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := eng.Run(ctx, agent.Request{
		Messages: []agent.TurnMessage{{Role: "user", Content: "hi"}},
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
