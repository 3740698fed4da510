package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/task/application/domain"
	"go-taskbot/internal/pkg/task/persistence/repository/port"
)

type PgTaskRepository struct {
	pool *pgxpool.Pool
}

var _ port.TaskRepository = (*PgTaskRepository)(nil)

func NewPgTaskRepository(pool *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{pool: pool}
}

const taskColumns = "id::text, user_id::text, title, description, completed, created_at, updated_at"

func (r *PgTaskRepository) Create(ctx context.Context, userID, title string, description *string) (*domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description)
		VALUES ($1::uuid, $2, $3)
		RETURNING `+taskColumns,
		userID, title, description)
	return scanTask(row)
}

func (r *PgTaskRepository) ListByUser(ctx context.Context, userID string, status port.StatusFilter) ([]domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1::uuid`
	switch status {
	case port.StatusPending:
		query += " AND completed = FALSE"
	case port.StatusCompleted:
		query += " AND completed = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *PgTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1::uuid
	`, id)
	return maybeTask(scanTask(row))
}

func (r *PgTaskRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	return maybeTask(scanTask(row))
}

func (r *PgTaskRepository) Update(ctx context.Context, id, userID string, fields port.UpdateFields) (*domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    completed = COALESCE($5, completed),
		    updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING `+taskColumns,
		id, userID, fields.Title, fields.Description, fields.Completed)
	return maybeTask(scanTask(row))
}

func (r *PgTaskRepository) Complete(ctx context.Context, id, userID string) (*domain.Task, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTaskRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = TRUE, updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING `+taskColumns,
		id, userID)
	return maybeTask(scanTask(row))
}

func (r *PgTaskRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgTaskRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgTaskRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgTaskRepository: nil pool")
	}
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = $1::uuid",
		userID,
	).Scan(&n)
	return n, err
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// maybeTask turns pgx.ErrNoRows into a nil task so callers can decide
// between not-found and forbidden.
func maybeTask(t *domain.Task, err error) (*domain.Task, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}
