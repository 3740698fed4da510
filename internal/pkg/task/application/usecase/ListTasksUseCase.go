package usecase

import (
	"context"
	"fmt"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// ListTasksInput carries the filter for listing a user's tasks
type ListTasksInput struct {
	UserID string
	Status repository.StatusFilter
}

// ListTasksUseCase lists the tasks owned by a user
type ListTasksUseCase struct {
	Repo repository.TaskRepository
}

func NewListTasksUseCase(repo repository.TaskRepository) *ListTasksUseCase {
	return &ListTasksUseCase{Repo: repo}
}

// Execute returns the user's tasks, newest first
func (uc *ListTasksUseCase) Execute(ctx context.Context, in ListTasksInput) ([]domain.Task, error) {
	status := in.Status
	switch status {
	case repository.StatusAll, repository.StatusPending, repository.StatusCompleted:
	case "":
		status = repository.StatusAll
	default:
		return nil, fmt.Errorf("%w: status must be all, pending or completed", ErrValidation)
	}

	tasks, err := uc.Repo.ListByUser(ctx, in.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return tasks, nil
}
