package usecase

import (
	"context"
	"fmt"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// CompleteTaskInput identifies the task to mark done
type CompleteTaskInput struct {
	TaskID string
	UserID string
}

// CompleteTaskUseCase marks an owned task as completed
type CompleteTaskUseCase struct {
	Repo repository.TaskRepository
}

func NewCompleteTaskUseCase(repo repository.TaskRepository) *CompleteTaskUseCase {
	return &CompleteTaskUseCase{Repo: repo}
}

// Execute marks the task completed; completing an already completed task is a no-op
func (uc *CompleteTaskUseCase) Execute(ctx context.Context, in CompleteTaskInput) (*domain.Task, error) {
	if !validTaskID(in.TaskID) {
		return nil, ErrNotFound
	}
	existing, err := uc.Repo.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != in.UserID {
		return nil, ErrForbidden
	}

	t, err := uc.Repo.Complete(ctx, in.TaskID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}
