package port

import (
	"context"

	"go-taskbot/internal/pkg/task/application/domain"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// UpdateFields carries the optional fields of a partial task update. A nil
// field is left unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskRepository persists tasks. Lookups scoped by user return nil when the
// task does not exist or belongs to someone else.
type TaskRepository interface {
	Create(ctx context.Context, userID, title string, description *string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string, status StatusFilter) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*domain.Task, error)
	Update(ctx context.Context, id, userID string, fields UpdateFields) (*domain.Task, error)
	Complete(ctx context.Context, id, userID string) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
