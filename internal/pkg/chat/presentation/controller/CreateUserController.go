package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-relay/internal/pkg/chat/application/usecase"
	repository "chat-relay/internal/repository/port"
)

// CreateUserController handles participant creation (one controller per
// endpoint).
type CreateUserController struct {
	UC      *usecase.CreateUserUseCase
	logger  zerolog.Logger
	timeout time.Duration
}

func NewCreateUserController(repo repository.UserRepository, logger zerolog.Logger, timeout time.Duration) *CreateUserController {
	return &CreateUserController{
		UC:      usecase.NewCreateUserUseCase(repo),
		logger:  logger.With().Str("controller", "create_user").Logger(),
		timeout: timeout,
	}
}

type createUserRequest struct {
	Name string `json:"name"`
}

func (h *CreateUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		user, err := h.UC.Execute(ctx, usecase.CreateUserInput{Name: req.Name})
		if err != nil {
			if errors.Is(err, usecase.ErrPersistence) {
				h.logger.Error().Err(err).Msg("user creation failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}
