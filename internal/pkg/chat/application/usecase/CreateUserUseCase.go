package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "chat-relay/internal/pkg/chat/application/domain"
	repository "chat-relay/internal/repository/port"
)

// CreateUserInput carries the display name for a new participant.
type CreateUserInput struct {
	Name string
}

// CreateUserUseCase registers a participant once at join time.
type CreateUserUseCase struct {
	Repo repository.UserRepository
}

func NewCreateUserUseCase(repo repository.UserRepository) *CreateUserUseCase {
	return &CreateUserUseCase{Repo: repo}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, in CreateUserInput) (chat.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return chat.User{}, fmt.Errorf("name is required")
	}

	user, err := uc.Repo.Create(ctx, name)
	if err != nil {
		return chat.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
