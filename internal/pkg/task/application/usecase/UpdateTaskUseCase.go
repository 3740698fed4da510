package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// UpdateTaskInput carries a partial update; nil fields stay untouched
type UpdateTaskInput struct {
	TaskID      string
	UserID      string
	Title       *string
	Description *string
	Completed   *bool
}

// UpdateTaskUseCase applies a partial update to an owned task
type UpdateTaskUseCase struct {
	Repo repository.TaskRepository
}

func NewUpdateTaskUseCase(repo repository.TaskRepository) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{Repo: repo}
}

// Execute updates the task and returns the new state
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, in UpdateTaskInput) (*domain.Task, error) {
	if !validTaskID(in.TaskID) {
		return nil, ErrNotFound
	}
	if in.Title == nil && in.Description == nil && in.Completed == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", ErrValidation)
	}

	fields := repository.UpdateFields{Description: in.Description, Completed: in.Completed}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		title = domain.TruncateTitle(title)
		fields.Title = &title
	}
	if in.Description != nil {
		d := domain.TruncateDescription(*in.Description)
		fields.Description = &d
	}

	// Ownership check first so foreign tasks surface as forbidden, not missing
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

	t, err := uc.Repo.Update(ctx, in.TaskID, in.UserID, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}
