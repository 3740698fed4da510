package usecase

import (
	"context"
	"fmt"

	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
)

// DeleteConversationInput identifies the conversation to delete
type DeleteConversationInput struct {
	ConversationID string
	UserID         string
}

// DeleteConversationUseCase removes a conversation and its messages
type DeleteConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewDeleteConversationUseCase(repo repository.ChatRepository) *DeleteConversationUseCase {
	return &DeleteConversationUseCase{Repo: repo}
}

// Execute deletes the conversation; cascading removes its messages
func (uc *DeleteConversationUseCase) Execute(ctx context.Context, in DeleteConversationInput) error {
	if !validConversationID(in.ConversationID) {
		return ErrNotFound
	}
	deleted, err := uc.Repo.DeleteConversation(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
