package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "go-taskbot/internal/pkg/chat/application/domain"
	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

const conversationColumns = "id::text, user_id::text, title, created_at, updated_at"

func (r *PgChatRepository) CreateConversation(ctx context.Context, userID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (user_id)
		VALUES ($1::uuid)
		RETURNING `+conversationColumns,
		userID)
	return scanConversation(row)
}

func (r *PgChatRepository) FindConversationByIDAndUser(ctx context.Context, id, userID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	c, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *PgChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE user_id = $1::uuid
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *c)
	}
	return convs, rows.Err()
}

func (r *PgChatRepository) DeleteConversation(ctx context.Context, id, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	// Messages go with it via ON DELETE CASCADE
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM conversations
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, conversationID, role, content string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var m chat.Message
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, role, content)
		VALUES ($1::uuid, $2, $3)
		RETURNING id, conversation_id::text, role, content, created_at
	`, conversationID, role, content).Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgChatRepository) RecentMessages(ctx context.Context, conversationID string, limit int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id::text, role, content, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs, err := collectMessages(rows)
	if err != nil {
		return nil, err
	}
	// Query runs newest-first for the LIMIT; callers want oldest-first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *PgChatRepository) CompleteTurn(ctx context.Context, conversationID string, updatedAt time.Time, title string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE conversations
		SET updated_at = $2, title = COALESCE(title, $3)
		WHERE id = $1::uuid
	`, conversationID, updatedAt, title)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanConversation(row pgx.Row) (*chat.Conversation, error) {
	var c chat.Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectMessages(rows pgx.Rows) ([]chat.Message, error) {
	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
