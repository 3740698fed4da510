package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	chat "go-taskbot/internal/pkg/chat/application/domain"
)

func TestGetConversationReturnsRecentWindow(t *testing.T) {
	repo := newFakeChatRepo()
	conv, _ := repo.CreateConversation(context.Background(), "u1")
	for i := 1; i <= 25; i++ {
		_, _ = repo.SaveMessage(context.Background(), conv.ID, chat.RoleUser, fmt.Sprintf("msg %d", i))
	}

	uc := NewGetConversationUseCase(repo)
	out, err := uc.Execute(context.Background(), GetConversationInput{
		ConversationID: conv.ID,
		UserID:         "u1",
	})
	require.NoError(t, err)
	require.Equal(t, conv.ID, out.Conversation.ID)
	require.Len(t, out.Messages, HistoryWindow)
	require.Equal(t, "msg 6", out.Messages[0].Content)
	require.Equal(t, "msg 25", out.Messages[len(out.Messages)-1].Content)
}

func TestGetConversationForeignLooksMissing(t *testing.T) {
	repo := newFakeChatRepo()
	conv, _ := repo.CreateConversation(context.Background(), "someone-else")

	uc := NewGetConversationUseCase(repo)
	_, err := uc.Execute(context.Background(), GetConversationInput{
		ConversationID: conv.ID,
		UserID:         "u1",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetConversationMalformedID(t *testing.T) {
	repo := newFakeChatRepo()

	uc := NewGetConversationUseCase(repo)
	_, err := uc.Execute(context.Background(), GetConversationInput{
		ConversationID: "abc",
		UserID:         "u1",
	})
	require.ErrorIs(t, err, ErrNotFound)
	// The repository must never see an ID it cannot cast
	require.Empty(t, repo.calls)
}

func TestDeleteConversationMalformedID(t *testing.T) {
	uc := NewDeleteConversationUseCase(newFakeChatRepo())

	err := uc.Execute(context.Background(), DeleteConversationInput{
		ConversationID: "abc",
		UserID:         "u1",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteConversationUnknownID(t *testing.T) {
	uc := NewDeleteConversationUseCase(newFakeChatRepo())

	err := uc.Execute(context.Background(), DeleteConversationInput{
		ConversationID: uuid.NewString(),
		UserID:         "u1",
	})
	require.ErrorIs(t, err, ErrNotFound)
}
