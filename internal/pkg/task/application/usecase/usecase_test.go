package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-taskbot/internal/pkg/task/application/domain"
	repository "go-taskbot/internal/pkg/task/persistence/repository/port"
)

// stubTaskRepo is an in-memory TaskRepository for use case tests.
type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: map[string]*domain.Task{}}
}

func (s *stubTaskRepo) Create(_ context.Context, userID, title string, description *string) (*domain.Task, error) {
	t := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *stubTaskRepo) ListByUser(_ context.Context, userID string, status repository.StatusFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if status == repository.StatusPending && t.Completed {
			continue
		}
		if status == repository.StatusCompleted && !t.Completed {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	return s.tasks[id], nil
}

func (s *stubTaskRepo) FindByIDAndUser(_ context.Context, id, userID string) (*domain.Task, error) {
	t := s.tasks[id]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (s *stubTaskRepo) Update(_ context.Context, id, userID string, fields repository.UpdateFields) (*domain.Task, error) {
	t, _ := s.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = fields.Description
	}
	if fields.Completed != nil {
		t.Completed = *fields.Completed
	}
	return t, nil
}

func (s *stubTaskRepo) Complete(_ context.Context, id, userID string) (*domain.Task, error) {
	t, _ := s.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return nil, nil
	}
	t.Completed = true
	return t, nil
}

func (s *stubTaskRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	t, _ := s.FindByIDAndUser(context.Background(), id, userID)
	if t == nil {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *stubTaskRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range s.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func TestCreateTaskTrimsAndTruncates(t *testing.T) {
	uc := NewCreateTaskUseCase(newStubTaskRepo())

	task, err := uc.Execute(context.Background(), CreateTaskInput{
		UserID: "u1",
		Title:  "  " + strings.Repeat("t", 250) + "  ",
	})
	require.NoError(t, err)
	require.Len(t, task.Title, domain.TitleMaxLen)
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	uc := NewCreateTaskUseCase(newStubTaskRepo())

	_, err := uc.Execute(context.Background(), CreateTaskInput{UserID: "u1", Title: "   "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetTaskOwnershipMapping(t *testing.T) {
	repo := newStubTaskRepo()
	mine, _ := repo.Create(context.Background(), "u1", "mine", nil)
	theirs, _ := repo.Create(context.Background(), "u2", "theirs", nil)

	uc := NewGetTaskUseCase(repo)

	got, err := uc.Execute(context.Background(), GetTaskInput{TaskID: mine.ID, UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, "mine", got.Title)

	// Missing task is not-found
	_, err = uc.Execute(context.Background(), GetTaskInput{TaskID: uuid.NewString(), UserID: "u1"})
	require.ErrorIs(t, err, ErrNotFound)

	// Someone else's task is forbidden, not missing
	_, err = uc.Execute(context.Background(), GetTaskInput{TaskID: theirs.ID, UserID: "u1"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateTaskRequiresAField(t *testing.T) {
	repo := newStubTaskRepo()
	task, _ := repo.Create(context.Background(), "u1", "x", nil)

	uc := NewUpdateTaskUseCase(repo)
	_, err := uc.Execute(context.Background(), UpdateTaskInput{TaskID: task.ID, UserID: "u1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCompleteTaskIdempotent(t *testing.T) {
	repo := newStubTaskRepo()
	task, _ := repo.Create(context.Background(), "u1", "x", nil)

	uc := NewCompleteTaskUseCase(repo)
	for i := 0; i < 2; i++ {
		got, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: task.ID, UserID: "u1"})
		require.NoError(t, err)
		require.True(t, got.Completed)
	}
}

func TestDeleteTaskForeignForbidden(t *testing.T) {
	repo := newStubTaskRepo()
	theirs, _ := repo.Create(context.Background(), "u2", "theirs", nil)

	uc := NewDeleteTaskUseCase(repo)
	err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: theirs.ID, UserID: "u1"})
	require.ErrorIs(t, err, ErrForbidden)

	// Still there
	require.Len(t, repo.tasks, 1)
}

// errRepo fails every operation; lookups with IDs that cannot be UUIDs
// must never reach the repository.
type errRepo struct{ stubTaskRepo }

func (e *errRepo) FindByID(context.Context, string) (*domain.Task, error) {
	return nil, errors.New("unreachable")
}

func TestMalformedTaskIDIsNotFound(t *testing.T) {
	repo := &errRepo{stubTaskRepo{tasks: map[string]*domain.Task{}}}

	_, err := NewGetTaskUseCase(repo).Execute(context.Background(), GetTaskInput{TaskID: "abc", UserID: "u1"})
	require.ErrorIs(t, err, ErrNotFound)

	title := "x"
	_, err = NewUpdateTaskUseCase(repo).Execute(context.Background(), UpdateTaskInput{TaskID: "abc", UserID: "u1", Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = NewCompleteTaskUseCase(repo).Execute(context.Background(), CompleteTaskInput{TaskID: "abc", UserID: "u1"})
	require.ErrorIs(t, err, ErrNotFound)

	err = NewDeleteTaskUseCase(repo).Execute(context.Background(), DeleteTaskInput{TaskID: "abc", UserID: "u1"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListTasksRejectsBadFilter(t *testing.T) {
	uc := NewListTasksUseCase(newStubTaskRepo())

	_, err := uc.Execute(context.Background(), ListTasksInput{UserID: "u1", Status: "bogus"})
	require.ErrorIs(t, err, ErrValidation)
}
