package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	cacheport "chat-relay/internal/infrastructure/cache/port"
	qport "chat-relay/internal/infrastructure/queue/port"
	"chat-relay/internal/infrastructure/realtime"
	"chat-relay/internal/pkg/assistant"
	"chat-relay/internal/pkg/chat/presentation/controller"
	chatrepo "chat-relay/internal/pkg/chat/persistence/repository/port"
	userrepo "chat-relay/internal/repository/port"
)

// Deps bundles the collaborators the chat endpoints need. Cache and Queue
// may be nil when Redis is not configured.
type Deps struct {
	Messages      chatrepo.ChatRepository
	Users         userrepo.UserRepository
	Hub           *realtime.Hub
	Provider      assistant.Provider
	Cache         cacheport.Cache
	Queue         qport.Client
	Logger        zerolog.Logger
	AllowedOrigin string
	StoreTimeout  time.Duration
	AITimeout     time.Duration
}

// RegisterRoutes wires the relay's endpoints: the websocket upgrade at /ws
// and the request/response API under /api.
func RegisterRoutes(r *gin.Engine, d Deps) {
	socketCtl := controller.NewChatSocketController(d.Messages, d.Hub, d.Queue, d.Logger, d.StoreTimeout)
	createUserCtl := controller.NewCreateUserController(d.Users, d.Logger, d.StoreTimeout)
	listMsgCtl := controller.NewListMessagesController(d.Messages, d.Cache, d.Logger, d.StoreTimeout)
	assistantCtl := controller.NewAssistantController(d.Provider, d.Logger, d.AITimeout)

	r.GET("/ws", socketCtl.Handle(d.AllowedOrigin))

	api := r.Group("/api")
	api.POST("/users", createUserCtl.Handle())
	api.GET("/messages", listMsgCtl.Handle())
	api.POST("/ai-response", assistantCtl.Handle())
}
