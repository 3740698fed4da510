package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-taskbot/internal/pkg/auth/application/domain"
	repository "go-taskbot/internal/pkg/auth/persistence/repository/port"
)

// PasswordMinLen is the minimum accepted password length.
const PasswordMinLen = 8

// RegisterInput carries a new account request
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// RegisterUseCase creates user accounts
type RegisterUseCase struct {
	Repo repository.UserRepository
}

func NewRegisterUseCase(repo repository.UserRepository) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo}
}

// Execute validates the input, hashes the password and stores the user
func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(in.Password) < PasswordMinLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, PasswordMinLen)
	}

	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := uc.Repo.Create(ctx, email, string(hash), in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
