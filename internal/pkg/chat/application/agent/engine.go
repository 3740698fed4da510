package agent

import "context"

// Trace item kinds emitted by an engine run.
const (
	TraceFunctionCall   = "function_call"
	TraceFunctionOutput = "function_call_output"
)

// ToolChangeDetected names the synthetic record produced when task state
// changed during a turn but no tool call could be attributed.
const ToolChangeDetected = "task_change_detected"

// TurnMessage is one entry of the prompt sent to the engine.
type TurnMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolCallRecord describes one tool invocation the engine performed,
// paired with the payload the tool returned.
type ToolCallRecord struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Result map[string]any `json:"result"`
}

// TraceItem is one raw step of the engine's run log. Output is only set
// for TraceFunctionOutput items.
type TraceItem struct {
	Kind   string
	Tool   string
	Args   map[string]any
	Output map[string]any
}

// Request is a single stateless engine invocation: instructions, the
// windowed turn and the tools the engine may call.
type Request struct {
	Instructions string
	Messages     []TurnMessage
	Tools        *Toolset
}

// Result is what an engine run produced.
type Result struct {
	Output    string
	ToolCalls []ToolCallRecord
	Trace     []TraceItem
}

// Engine runs one conversational turn against a language model.
type Engine interface {
	Run(ctx context.Context, req Request) (*Result, error)
}
