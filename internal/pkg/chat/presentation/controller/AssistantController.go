package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-relay/internal/pkg/assistant"
	"chat-relay/internal/pkg/chat/application/usecase"
)

// AssistantController handles on-demand synthetic replies. The reply goes
// back to the requester only; it never enters the persistence or fanout
// paths.
type AssistantController struct {
	UC      *usecase.AskAssistantUseCase
	logger  zerolog.Logger
	timeout time.Duration
}

func NewAssistantController(provider assistant.Provider, logger zerolog.Logger, timeout time.Duration) *AssistantController {
	return &AssistantController{
		UC:      usecase.NewAskAssistantUseCase(provider),
		logger:  logger.With().Str("controller", "assistant").Logger(),
		timeout: timeout,
	}
}

type assistantRequest struct {
	Messages []assistantMessage `json:"messages"`
	User     json.RawMessage    `json:"user"`
}

type assistantMessage struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
	User    struct {
		Name string `json:"name"`
	} `json:"user"`
}

func (h *AssistantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assistantRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 || len(req.User) == 0 || string(req.User) == "null" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		transcript := make([]usecase.TranscriptEntry, 0, len(req.Messages))
		for _, m := range req.Messages {
			transcript = append(transcript, usecase.TranscriptEntry{
				UserID:   m.UserID,
				Content:  m.Content,
				UserName: m.User.Name,
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		reply, err := h.UC.Execute(ctx, usecase.AskAssistantInput{Transcript: transcript})
		if err != nil {
			h.logger.Error().Err(err).Msg("assistant reply failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting AI response"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"content": reply})
	}
}
