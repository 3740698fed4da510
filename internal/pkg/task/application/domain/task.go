package domain

import "time"

const (
	// TitleMaxLen bounds task titles.
	TitleMaxLen = 200
	// DescriptionMaxLen bounds task descriptions.
	DescriptionMaxLen = 1000
)

// Task is a single to-do item owned by a user.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TruncateTitle clamps a title to TitleMaxLen runes.
func TruncateTitle(s string) string {
	return truncate(s, TitleMaxLen)
}

// TruncateDescription clamps a description to DescriptionMaxLen runes.
func TruncateDescription(s string) string {
	return truncate(s, DescriptionMaxLen)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
