package usecase

import (
	"context"
	"fmt"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// GetTaskInput identifies the task to fetch
type GetTaskInput struct {
	TaskID string
	UserID string
}

// GetTaskUseCase fetches one task, enforcing ownership
type GetTaskUseCase struct {
	Repo repository.TaskRepository
}

func NewGetTaskUseCase(repo repository.TaskRepository) *GetTaskUseCase {
	return &GetTaskUseCase{Repo: repo}
}

// Execute returns the task, ErrNotFound when it does not exist and
// ErrForbidden when it belongs to someone else
func (uc *GetTaskUseCase) Execute(ctx context.Context, in GetTaskInput) (*domain.Task, error) {
	if !validTaskID(in.TaskID) {
		return nil, ErrNotFound
	}
	t, err := uc.Repo.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.UserID != in.UserID {
		return nil, ErrForbidden
	}
	return t, nil
}
