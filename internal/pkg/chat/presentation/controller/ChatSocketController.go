package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	qport "chat-relay/internal/infrastructure/queue/port"
	"chat-relay/internal/infrastructure/realtime"
	chat "chat-relay/internal/pkg/chat/application/domain"
	"chat-relay/internal/pkg/chat/application/task"
	"chat-relay/internal/pkg/chat/application/usecase"
	repository "chat-relay/internal/pkg/chat/persistence/repository/port"
)

const defaultReadTimeout = 60 * time.Second

// ChatSocketController owns the websocket endpoint: upgrade, ingest and
// fanout. Each accepted socket gets its own read goroutine (this handler)
// and write goroutine (the connection's loop), so one slow persistence call
// only stalls the connection that caused it.
type ChatSocketController struct {
	hub             *realtime.Hub
	postMessageUC   *usecase.PostMessageUseCase
	queue           qport.Client // nil when no queue is wired
	logger          zerolog.Logger
	inflightTimeout time.Duration
}

func NewChatSocketController(repo repository.ChatRepository, hub *realtime.Hub, queue qport.Client, logger zerolog.Logger, timeout time.Duration) *ChatSocketController {
	return &ChatSocketController{
		hub:             hub,
		postMessageUC:   usecase.NewPostMessageUseCase(repo),
		queue:           queue,
		logger:          logger.With().Str("controller", "chat_socket").Logger(),
		inflightTimeout: timeout,
	}
}

func newUpgrader(allowedOrigin string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin; the browser surface is
			// limited to the single configured origin, matched exactly as
			// the CORS middleware matches it.
			return origin == "" || origin == allowedOrigin
		},
	}
}

// inboundFrame is the channel payload: a discriminator tag plus free-text
// content for chat frames.
type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// outboundMessage is the fanout payload sent to every live connection.
type outboundMessage struct {
	Type    string       `json:"type"`
	Message chat.Message `json:"message"`
}

// Handle upgrades the connection, registers it with the hub and processes
// frames until the client disconnects.
//
// Identity comes from the userId query parameter with no verification, a
// known trust-boundary gap: any client can claim any id at upgrade time.
func (ctl *ChatSocketController) Handle(allowedOrigin string) gin.HandlerFunc {
	upgrader := newUpgrader(allowedOrigin)

	return func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.hub.Register(conn)
		ctl.logger.Info().Str("userId", userID).Str("session", conn.ID).Msg("websocket connected")

		defer func() {
			ctl.hub.Unregister(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
			ctl.logger.Info().Str("userId", userID).Str("session", conn.ID).Msg("websocket disconnected")
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			ctl.handleFrame(c.Request.Context(), conn, data)
		}
	}
}

// handleFrame processes one inbound frame. Malformed payloads and unknown
// discriminators are logged and dropped without surfacing anything to the
// sender; a valid chat frame is persisted first and broadcast only on
// success.
func (ctl *ChatSocketController) handleFrame(ctx context.Context, conn *realtime.Connection, data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		ctl.logger.Warn().Str("userId", conn.UserID).Err(err).Msg("dropping malformed frame")
		return
	}

	if frame.Type != "chat" {
		ctl.logger.Debug().Str("userId", conn.UserID).Str("type", frame.Type).Msg("ignoring unknown frame type")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.postMessageUC.Execute(ctx, usecase.PostMessageInput{
		Content: frame.Content,
		UserID:  conn.UserID,
	})
	if err != nil {
		// Fire-and-forget ingest: the sender gets no error frame and the
		// absence of the broadcast echo is its only signal.
		ctl.logger.Error().Str("userId", conn.UserID).Err(err).Msg("message dropped")
		return
	}

	payload, err := json.Marshal(outboundMessage{Type: "newMessage", Message: msg})
	if err != nil {
		ctl.logger.Error().Err(err).Msg("failed to encode broadcast payload")
		return
	}

	delivered := ctl.hub.Broadcast(payload)
	ctl.logger.Debug().Str("messageId", msg.ID).Int("delivered", delivered).Msg("message broadcast")

	if ctl.queue != nil {
		if err := task.EnqueueRefreshTranscript(ctx, ctl.queue); err != nil {
			ctl.logger.Warn().Err(err).Msg("transcript refresh enqueue failed")
		}
	}
}
