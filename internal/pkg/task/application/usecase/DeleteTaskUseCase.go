package usecase

import (
	"context"
	"fmt"

	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// DeleteTaskInput identifies the task to delete
type DeleteTaskInput struct {
	TaskID string
	UserID string
}

// DeleteTaskUseCase removes an owned task
type DeleteTaskUseCase struct {
	Repo repository.TaskRepository
}

func NewDeleteTaskUseCase(repo repository.TaskRepository) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{Repo: repo}
}

// Execute deletes the task permanently
func (uc *DeleteTaskUseCase) Execute(ctx context.Context, in DeleteTaskInput) error {
	if !validTaskID(in.TaskID) {
		return ErrNotFound
	}
	existing, err := uc.Repo.FindByID(ctx, in.TaskID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.UserID != in.UserID {
		return ErrForbidden
	}

	deleted, err := uc.Repo.Delete(ctx, in.TaskID, in.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
