package agent

import chat "go-taskbot/internal/pkg/chat/application/domain"

// BuildTurn assembles the engine prompt from stored history plus the new
// user message. History arrives oldest-first; the new message goes last.
func BuildTurn(history []chat.Message, userText string) []TurnMessage {
	msgs := make([]TurnMessage, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, TurnMessage{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, TurnMessage{Role: chat.RoleUser, Content: userText})
	return msgs
}
