package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message roles. Only these two are stored; system instructions are
// injected per turn and never persisted.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxMessageLen bounds the content of a single user message.
const MaxMessageLen = 1000

// ErrEmptyMessage is returned when a message is blank after trimming.
var ErrEmptyMessage = fmt.Errorf("message cannot be empty")

// ErrMessageTooLong is returned when a message exceeds MaxMessageLen.
var ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", MaxMessageLen)

// Message is one stored conversation entry. IDs are assigned by the
// database in insertion order, which breaks created_at ties.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserMessage validates raw user input and returns the content to store.
func NewUserMessage(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLen {
		return "", ErrMessageTooLong
	}
	return trimmed, nil
}
