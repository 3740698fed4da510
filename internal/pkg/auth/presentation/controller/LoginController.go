package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-taskbot/internal/pkg/auth/application/usecase"
	repository "go-taskbot/internal/pkg/auth/persistence/repository/port"
	"go-taskbot/internal/pkg/auth/token"
)

// LoginController handles the login endpoint only (one controller per endpoint)
type LoginController struct {
	uc *usecase.LoginUseCase
}

func NewLoginController(repo repository.UserRepository, tokens *token.Manager) *LoginController {
	return &LoginController{uc: usecase.NewLoginUseCase(repo, tokens)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handle returns a gin handler that verifies credentials and issues a token
func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		out, err := h.uc.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"access_token": out.Token,
				"token_type":   "bearer",
				"user":         out.User,
			})
		}
	}
}
