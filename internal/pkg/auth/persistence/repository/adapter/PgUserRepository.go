package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-taskbot/internal/pkg/auth/application/domain"
	"go-taskbot/internal/pkg/auth/persistence/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

var _ port.UserRepository = (*PgUserRepository)(nil)

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = "id::text, email, name, password_hash, created_at"

func (r *PgUserRepository) Create(ctx context.Context, email, passwordHash string, name *string) (*domain.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, name, passwordHash)
	return scanUser(row)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return maybeUser(scanUser(row))
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1::uuid
	`, id)
	return maybeUser(scanUser(row))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func maybeUser(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}
