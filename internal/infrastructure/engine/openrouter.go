package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"go-taskbot/internal/pkg/chat/application/agent"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "nvidia/nemotron-3-nano-30b-a3b:free"

	// maxIterations bounds the tool loop of a single turn.
	maxIterations = 8
)

// OpenRouterEngine runs turns against any OpenAI-compatible
// chat-completions API.
type OpenRouterEngine struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ agent.Engine = (*OpenRouterEngine)(nil)

// NewOpenRouterEngine creates an engine. The HTTP client carries no
// timeout of its own; callers bound each run through the context.
func NewOpenRouterEngine(apiKey, model, baseURL string, logger *slog.Logger) *OpenRouterEngine {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenRouterEngine{
		model:   model,
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

// NewEngineFromEnv builds the engine from OPENROUTER_API_KEY,
// OPENROUTER_MODEL and OPENROUTER_BASE_URL.
func NewEngineFromEnv(logger *slog.Logger) (*OpenRouterEngine, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is not set")
	}
	return NewOpenRouterEngine(apiKey, os.Getenv("OPENROUTER_MODEL"), os.Getenv("OPENROUTER_BASE_URL"), logger), nil
}

// Run executes one turn: instructions first, then the windowed messages,
// looping through tool calls until the model produces a final message or
// the iteration cap is hit.
func (e *OpenRouterEngine) Run(ctx context.Context, req agent.Request) (*agent.Result, error) {
	msgs := make([]openaiMessage, 0, len(req.Messages)+2)
	msgs = append(msgs, openaiMessage{Role: "system", Content: req.Instructions})
	for _, m := range req.Messages {
		msgs = append(msgs, openaiMessage{Role: m.Role, Content: m.Content})
	}

	var tools []openaiTool
	if req.Tools != nil {
		for _, s := range req.Tools.Schemas() {
			tools = append(tools, openaiTool{
				Type: "function",
				Function: openaiToolFunction{
					Name:        s.Name,
					Description: s.Description,
					Parameters:  s.Parameters,
				},
			})
		}
	}

	result := &agent.Result{}

	for i := 0; i < maxIterations; i++ {
		resp, err := e.complete(ctx, openaiRequest{
			Model:    e.model,
			Messages: msgs,
			Tools:    tools,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("completion returned no choices")
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			result.Output = choice.Content
			return result, nil
		}

		msgs = append(msgs, choice)

		for _, tc := range choice.ToolCalls {
			args := json.RawMessage(tc.Function.Arguments)
			result.Trace = append(result.Trace, agent.TraceItem{
				Kind: agent.TraceFunctionCall,
				Tool: tc.Function.Name,
				Args: decodeArgs(args),
			})

			output := e.invokeTool(ctx, req.Tools, tc.Function.Name, args)
			result.Trace = append(result.Trace, agent.TraceItem{
				Kind:   agent.TraceFunctionOutput,
				Tool:   tc.Function.Name,
				Output: asOutputMap(output),
			})

			encoded, err := json.Marshal(output)
			if err != nil {
				encoded = []byte(`{"error": "tool output could not be encoded"}`)
			}
			msgs = append(msgs, openaiMessage{
				Role:       "tool",
				Content:    string(encoded),
				ToolCallID: tc.ID,
			})
		}
	}

	return nil, fmt.Errorf("tool loop exceeded %d iterations", maxIterations)
}

// invokeTool runs one tool, converting execution failures into an error
// payload the model can read instead of aborting the turn.
func (e *OpenRouterEngine) invokeTool(ctx context.Context, tools *agent.Toolset, name string, args json.RawMessage) any {
	if tools == nil {
		return map[string]any{"error": "no tools available"}
	}
	out, err := tools.Execute(ctx, name, args)
	if err != nil {
		e.logger.Error("tool execution failed", "tool", name, "error", err)
		return map[string]any{"error": "tool execution failed"}
	}
	return out
}

func (e *OpenRouterEngine) complete(ctx context.Context, req openaiRequest) (*openaiResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion returned status %d: %s", httpResp.StatusCode, truncateBody(respBody))
	}

	var resp openaiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}

func decodeArgs(raw json.RawMessage) map[string]any {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}

// asOutputMap coerces a tool payload to a map for the trace, wrapping
// non-object payloads such as the list_tasks array.
func asOutputMap(out any) map[string]any {
	if m, ok := out.(map[string]any); ok {
		return m
	}
	return map[string]any{"output": out}
}

func truncateBody(b []byte) string {
	const limit = 512
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}

// --- OpenAI API wire types ---

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
	Tools    []openaiTool    `json:"tools,omitempty"`
}

type openaiMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content,omitempty"`
	ToolCalls  []openaiToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type openaiTool struct {
	Type     string             `json:"type"`
	Function openaiToolFunction `json:"function"`
}

type openaiToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type openaiToolCall struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Function openaiToolCallFunction `json:"function"`
}

type openaiToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openaiResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Index        int           `json:"index"`
	Message      openaiMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}
