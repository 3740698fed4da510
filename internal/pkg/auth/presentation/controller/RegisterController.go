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

// RegisterController handles the register endpoint only (one controller per endpoint)
type RegisterController struct {
	uc     *usecase.RegisterUseCase
	tokens *token.Manager
}

func NewRegisterController(repo repository.UserRepository, tokens *token.Manager) *RegisterController {
	return &RegisterController{uc: usecase.NewRegisterUseCase(repo), tokens: tokens}
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name"`
}

// Handle returns a gin handler that creates an account
func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.uc.Execute(ctx, usecase.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		default:
			tok, signErr := h.tokens.Sign(user.ID, user.Email)
			if signErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{
				"access_token": tok,
				"token_type":   "bearer",
				"user":         user,
			})
		}
	}
}
