package task

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "go-taskbot/internal/infrastructure/queue/port"
	"go-taskbot/internal/pkg/chat/application/agent"
	repoAdapter "go-taskbot/internal/pkg/chat/persistence/repository/adapter"
)

// AuditToolCallsTaskType is the queue task name for persisting the
// tool-call ledger of a completed turn.
const AuditToolCallsTaskType = "chat:audit_tool_calls"

// AuditToolCallsTaskPayload is the JSON payload transported via the queue.
type AuditToolCallsTaskPayload struct {
	UserID         string                 `json:"userId"`
	ConversationID string                 `json:"conversationId"`
	ToolCalls      []agent.ToolCallRecord `json:"toolCalls"`
}

// EnqueueAuditToolCalls queues the ledger write. Auditing is
// best-effort; callers log and move on when enqueueing fails.
func EnqueueAuditToolCalls(ctx context.Context, q qport.Client, p AuditToolCallsTaskPayload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	opts := qport.EnqueueOption{Queue: "audit", MaxRetry: 5}
	_, err = q.Enqueue(ctx, qport.Task{Type: AuditToolCallsTaskType, Payload: b}, opts)
	return err
}

// RegisterAuditToolCallsTask binds the task handler to the provided server.
func RegisterAuditToolCallsTask(srv qport.Server, pool *pgxpool.Pool, logger *slog.Logger) {
	srv.Register(AuditToolCallsTaskType, func(ctx context.Context, t qport.Task) error {
		var p AuditToolCallsTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			logger.Error("audit payload could not be decoded", "error", err)
			return nil
		}
		if len(p.ToolCalls) == 0 {
			return nil
		}

		repo := repoAdapter.NewPgToolCallAuditRepository(pool)

		// give DB a reasonable time budget per task execution
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		return repo.SaveRecords(ctx, p.UserID, p.ConversationID, p.ToolCalls)
	})
}
