package chat

import (
	"time"
	"unicode/utf8"
)

// TitleMaxLen bounds a derived conversation title.
const TitleMaxLen = 100

// Conversation groups the messages of one user's chat thread.
// Title stays nil until the first successful turn derives it.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveTitle builds a conversation title from the first user message,
// truncated to TitleMaxLen runes.
func DeriveTitle(message string) string {
	if utf8.RuneCountInString(message) <= TitleMaxLen {
		return message
	}
	return string([]rune(message)[:TitleMaxLen])
}
