package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-taskbot/internal/pkg/chat/application/agent"
	chat "go-taskbot/internal/pkg/chat/application/domain"
	repository "go-taskbot/internal/pkg/chat/persistence/repository/port"
	taskrepo "go-taskbot/internal/pkg/task/persistence/repository/port"
)

const (
	// HistoryWindow is how many stored messages feed the next turn.
	HistoryWindow = 20
	// EngineTimeout bounds one engine run.
	EngineTimeout = 30 * time.Second
)

// SendChatMessageInput carries one user message for a turn. A nil
// ConversationID starts a new conversation.
type SendChatMessageInput struct {
	UserID         string
	ConversationID *string
	Message        string
}

// SendChatMessageOutput is the completed turn.
type SendChatMessageOutput struct {
	ConversationID string
	Response       string
	ToolCalls      []agent.ToolCallRecord
}

// SendChatMessageUseCase runs one stateless conversational turn: load
// the history window, persist the user message, invoke the engine with
// tools, reconcile tool calls and persist the assistant reply.
type SendChatMessageUseCase struct {
	Repo     repository.ChatRepository
	TaskRepo taskrepo.TaskRepository
	Engine   agent.Engine
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewSendChatMessageUseCase(repo repository.ChatRepository, taskRepo taskrepo.TaskRepository, eng agent.Engine, logger *slog.Logger) *SendChatMessageUseCase {
	return &SendChatMessageUseCase{
		Repo:     repo,
		TaskRepo: taskRepo,
		Engine:   eng,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Execute runs the turn. The user message is stored before the engine
// runs, so a failed turn still leaves it in the history. The
// conversation's updated_at and title move only on success.
func (uc *SendChatMessageUseCase) Execute(ctx context.Context, in SendChatMessageInput) (*SendChatMessageOutput, error) {
	content, err := chat.NewUserMessage(in.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	conv, err := uc.resolveConversation(ctx, in)
	if err != nil {
		return nil, err
	}

	history, err := uc.Repo.RecentMessages(ctx, conv.ID, HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	turn := agent.BuildTurn(history, content)

	if _, err := uc.Repo.SaveMessage(ctx, conv.ID, chat.RoleUser, content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	beforeCount, err := uc.TaskRepo.CountByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, EngineTimeout)
	defer cancel()

	result, err := uc.Engine.Run(runCtx, agent.Request{
		Instructions: agent.Instructions,
		Messages:     turn,
		Tools:        agent.NewToolset(in.UserID, uc.TaskRepo),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			uc.Logger.Warn("engine run timed out", "conversation_id", conv.ID)
			return nil, ErrEngineTimeout
		}
		uc.Logger.Error("engine run failed", "conversation_id", conv.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}

	afterCount, err := uc.TaskRepo.CountByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	toolCalls := agent.Reconcile(result, beforeCount, afterCount)

	if _, err := uc.Repo.SaveMessage(ctx, conv.ID, chat.RoleAssistant, result.Output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Repo.CompleteTurn(ctx, conv.ID, uc.Now(), chat.DeriveTitle(content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &SendChatMessageOutput{
		ConversationID: conv.ID,
		Response:       result.Output,
		ToolCalls:      toolCalls,
	}, nil
}

// resolveConversation loads the referenced conversation, or creates one
// when the input names none. Unknown and foreign IDs both come back as
// ErrNotFound.
func (uc *SendChatMessageUseCase) resolveConversation(ctx context.Context, in SendChatMessageInput) (*chat.Conversation, error) {
	if in.ConversationID == nil || *in.ConversationID == "" {
		conv, err := uc.Repo.CreateConversation(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return conv, nil
	}

	if !validConversationID(*in.ConversationID) {
		return nil, ErrNotFound
	}
	conv, err := uc.Repo.FindConversationByIDAndUser(ctx, *in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, ErrNotFound
	}
	return conv, nil
}
