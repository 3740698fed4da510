package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// CreateTaskInput carries the data needed to create a task
type CreateTaskInput struct {
	UserID      string
	Title       string
	Description *string
}

// CreateTaskUseCase handles task creation (one use case per file)
type CreateTaskUseCase struct {
	Repo repository.TaskRepository
}

func NewCreateTaskUseCase(repo repository.TaskRepository) *CreateTaskUseCase {
	return &CreateTaskUseCase{Repo: repo}
}

// Execute validates and persists a new task for the user
func (uc *CreateTaskUseCase) Execute(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	title = domain.TruncateTitle(title)

	desc := in.Description
	if desc != nil {
		d := domain.TruncateDescription(*desc)
		desc = &d
	}

	t, err := uc.Repo.Create(ctx, in.UserID, title, desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return t, nil
}
