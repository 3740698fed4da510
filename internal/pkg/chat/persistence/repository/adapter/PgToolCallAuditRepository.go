package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/chat/application/agent"
	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
)

// PgToolCallAuditRepository stores the tool-call ledger of completed
// turns. The ledger is informational; chat turns never read it back.
type PgToolCallAuditRepository struct {
	pool *pgxpool.Pool
}

var _ repository.ToolCallAuditRepository = (*PgToolCallAuditRepository)(nil)

func NewPgToolCallAuditRepository(pool *pgxpool.Pool) *PgToolCallAuditRepository {
	return &PgToolCallAuditRepository{pool: pool}
}

func (r *PgToolCallAuditRepository) SaveRecords(ctx context.Context, userID, conversationID string, records []agent.ToolCallRecord) error {
	if r == nil || r.pool == nil {
		return errors.New("PgToolCallAuditRepository: nil pool")
	}
	for _, rec := range records {
		args, err := json.Marshal(rec.Args)
		if err != nil {
			return fmt.Errorf("encode args for %s: %w", rec.Tool, err)
		}
		result, err := json.Marshal(rec.Result)
		if err != nil {
			return fmt.Errorf("encode result for %s: %w", rec.Tool, err)
		}
		_, err = r.pool.Exec(ctx, `
			INSERT INTO tool_call_audit (user_id, conversation_id, tool, args, result)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		`, userID, conversationID, rec.Tool, args, result)
		if err != nil {
			return err
		}
	}
	return nil
}
