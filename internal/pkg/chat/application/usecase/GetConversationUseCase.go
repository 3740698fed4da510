package usecase

import (
	"context"
	"fmt"

	chat "go-taskbot/internal/pkg/chat/application/domain"
	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
)

// GetConversationInput identifies the conversation to fetch
type GetConversationInput struct {
	ConversationID string
	UserID         string
}

// GetConversationOutput is a conversation with its recent messages
type GetConversationOutput struct {
	Conversation chat.Conversation
	Messages     []chat.Message
}

// GetConversationUseCase fetches one conversation and its messages
type GetConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewGetConversationUseCase(repo repository.ChatRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo}
}

// Execute returns the conversation with its most recent messages,
// oldest-first, windowed the same way the engine sees them. Foreign
// conversations come back as ErrNotFound, never as forbidden.
func (uc *GetConversationUseCase) Execute(ctx context.Context, in GetConversationInput) (*GetConversationOutput, error) {
	if !validConversationID(in.ConversationID) {
		return nil, ErrNotFound
	}
	conv, err := uc.Repo.FindConversationByIDAndUser(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, ErrNotFound
	}

	msgs, err := uc.Repo.RecentMessages(ctx, in.ConversationID, HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &GetConversationOutput{Conversation: *conv, Messages: msgs}, nil
}
