package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements are applied in order on startup. All statements are
// idempotent so that a fleet of stateless workers can race the bootstrap.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email         TEXT NOT NULL UNIQUE,
		name          TEXT,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations (user_id, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id              BIGSERIAL PRIMARY KEY,
		conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages (conversation_id, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS tool_call_audit (
		id              BIGSERIAL PRIMARY KEY,
		user_id         UUID NOT NULL,
		conversation_id UUID NOT NULL,
		tool            TEXT NOT NULL,
		args            JSONB NOT NULL DEFAULT '{}'::jsonb,
		result          JSONB NOT NULL DEFAULT '{}'::jsonb,
		recorded_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tool_call_audit_user ON tool_call_audit (user_id, recorded_at DESC)`,
}

// Migrate creates the tables and indexes the application needs.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
