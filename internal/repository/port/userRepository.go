package repository

import (
	"context"

	chat "chat-relay/internal/pkg/chat/application/domain"
)

// UserRepository persists chat participants.
type UserRepository interface {
	// Create stores a participant with the given display name and returns
	// the created record with its store-assigned id.
	Create(ctx context.Context, name string) (chat.User, error)

	// FindByID fetches a participant by id.
	FindByID(ctx context.Context, id string) (chat.User, error)
}
