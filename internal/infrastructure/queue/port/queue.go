package port

import (
	"context"
	"time"
)

// Task is a background job: a stable type identifier plus opaque payload
// bytes. Payload encoding belongs to the task package that owns the type,
// keeping this port free of serialization concerns.
//
// Note: the queue carries post-turn work only (currently the tool-call
// audit job); nothing on the synchronous chat path ever waits on it.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes one Task. A non-nil error signals retry per adapter
// policy, so handlers must be idempotent; a handler that cannot make sense
// of its payload should log and return nil rather than retry forever.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption tunes a single enqueue. Adapters map the fields they
// support to the backend and ignore the rest; zero values mean
// "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	ProcessAt time.Time     // absolute schedule time (wins over ProcessIn if set)
	MaxRetry  int           // max retries for the task
	UniqueTTL time.Duration // enforce uniqueness within TTL window (if supported)
	Retention time.Duration // keep result metadata for this duration (if supported)
	Deadline  time.Time     // hard deadline for processing (if supported)
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs the background workers. Run blocks until Stop is called or
// the context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
