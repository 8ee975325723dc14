package usecase

import (
	"context"
	"fmt"

	chat "chat-relay/internal/pkg/chat/application/domain"
	repository "chat-relay/internal/pkg/chat/persistence/repository/port"
)

// PostMessageInput carries an inbound chat payload with the sender identity
// taken from the connection binding, never from the payload itself.
type PostMessageInput struct {
	Content string
	UserID  string
}

// PostMessageUseCase validates and durably persists one chat message. The
// caller broadcasts the returned record; nothing is ever broadcast unless
// this use case succeeded first.
type PostMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewPostMessageUseCase(repo repository.ChatRepository) *PostMessageUseCase {
	return &PostMessageUseCase{Repo: repo}
}

// Execute persists the message and returns it with the store-assigned id,
// timestamp and author display name.
func (uc *PostMessageUseCase) Execute(ctx context.Context, in PostMessageInput) (chat.Message, error) {
	draft, err := chat.NewDraft(in.Content, in.UserID)
	if err != nil {
		return chat.Message{}, err
	}

	msg, err := uc.Repo.SaveMessage(ctx, draft)
	if err != nil {
		return chat.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}
