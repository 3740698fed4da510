package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-taskbot/internal/pkg/auth/application/domain"
	repository "go-taskbot/internal/pkg/auth/persistence/repository/port"
	"go-taskbot/internal/pkg/auth/token"
)

// LoginInput carries login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is a successful login
type LoginOutput struct {
	User  *domain.User
	Token string
}

// LoginUseCase verifies credentials and issues a session token
type LoginUseCase struct {
	Repo   repository.UserRepository
	Tokens *token.Manager
}

func NewLoginUseCase(repo repository.UserRepository, tokens *token.Manager) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Tokens: tokens}
}

// Execute checks the password and returns a signed token
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := uc.Tokens.Sign(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginOutput{User: user, Token: signed}, nil
}
