package repository

import (
	"context"

	chat "chat-relay/internal/pkg/chat/application/domain"
)

// ChatRepository defines the persistence operations for the message
// transcript. The store assigns each message its canonical id and timestamp
// on insert.
type ChatRepository interface {
	// SaveMessage durably appends a message and returns the stored record,
	// including id, timestamp and the author's display name.
	SaveMessage(ctx context.Context, d chat.Draft) (chat.Message, error)

	// ListMessages returns the full transcript ordered by ascending
	// timestamp.
	ListMessages(ctx context.Context) ([]chat.Message, error)
}
