package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub is the connection registry: every live websocket session, keyed by its
// session ID. It is the only mutable shared state in the relay core, guarded
// by a single RWMutex so register/unregister/broadcast can race safely.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Connection
	logger   zerolog.Logger
}

// NewHub constructs an empty registry.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Connection),
		logger:   logger.With().Str("component", "hub").Logger(),
	}
}

// Register adds the connection as a broadcast target and starts its write
// loop. Multiple simultaneous connections for the same participant are all
// kept; the registry never deduplicates.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	h.sessions[conn.ID] = conn
	h.mu.Unlock()

	conn.Start()
}

// Unregister removes the connection if it is still tracked. Removing an
// already-removed or never-registered connection is a no-op.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	delete(h.sessions, conn.ID)
	h.mu.Unlock()
}

// Broadcast delivers payload to every registered connection, the sender
// included. A connection found closed (or that fails its send) is removed as
// a side effect; such failures never block delivery to the rest.
//
// Broadcast itself only enqueues: each connection's outbound channel keeps
// per-connection order, so sequential Broadcast calls arrive in call order.
// Returns the number of connections the payload was enqueued for.
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	delivered := 0
	var dead []*Connection
	for _, conn := range targets {
		if err := conn.Send(payload); err != nil {
			dead = append(dead, conn)
			continue
		}
		delivered++
	}

	for _, conn := range dead {
		h.Unregister(conn)
		h.logger.Debug().Str("session", conn.ID).Str("userId", conn.UserID).Msg("dropped dead connection during broadcast")
	}
	return delivered
}

// Len reports the current number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close terminates every tracked connection and clears the registry.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "server shutdown")
	}
}
