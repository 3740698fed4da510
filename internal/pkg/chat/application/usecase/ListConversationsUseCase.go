package usecase

import (
	"context"
	"fmt"

	chat "go-taskbot/internal/pkg/chat/application/domain"
	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsInput identifies whose conversations to list
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase lists a user's conversations
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

// Execute returns the user's conversations, most recently active first
func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.Conversation, error) {
	convs, err := uc.Repo.ListConversationsByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
