package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	cacheport "chat-relay/internal/infrastructure/cache/port"
	chat "chat-relay/internal/pkg/chat/application/domain"
	"chat-relay/internal/pkg/chat/application/usecase"
	repository "chat-relay/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesController serves the full transcript in ascending timestamp
// order.
type ListMessagesController struct {
	UC      *usecase.ListMessagesUseCase
	logger  zerolog.Logger
	timeout time.Duration
}

func NewListMessagesController(repo repository.ChatRepository, cache cacheport.Cache, logger zerolog.Logger, timeout time.Duration) *ListMessagesController {
	return &ListMessagesController{
		UC:      usecase.NewListMessagesUseCase(repo, cache, logger),
		logger:  logger.With().Str("controller", "list_messages").Logger(),
		timeout: timeout,
	}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		msgs, err := h.UC.Execute(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("transcript fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching messages"})
			return
		}
		if msgs == nil {
			msgs = []chat.Message{}
		}
		c.JSON(http.StatusOK, msgs)
	}
}
