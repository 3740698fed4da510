package repository

import (
	"context"
	"time"

	"go-taskbot/internal/pkg/chat/application/agent"
	chat "go-taskbot/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations and
// their messages. Lookups scoped by user return nil when the
// conversation does not exist or belongs to someone else.
type ChatRepository interface {
	CreateConversation(ctx context.Context, userID string) (*chat.Conversation, error)
	FindConversationByIDAndUser(ctx context.Context, id, userID string) (*chat.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error)
	DeleteConversation(ctx context.Context, id, userID string) (bool, error)

	SaveMessage(ctx context.Context, conversationID, role, content string) (*chat.Message, error)
	// RecentMessages returns the newest limit messages, oldest first.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]chat.Message, error)

	// CompleteTurn bumps updated_at and sets the title if none exists yet.
	CompleteTurn(ctx context.Context, conversationID string, updatedAt time.Time, title string) error
}

// ToolCallAuditRepository persists the tool calls of completed turns.
type ToolCallAuditRepository interface {
	SaveRecords(ctx context.Context, userID, conversationID string, records []agent.ToolCallRecord) error
}
