package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	cacheport "chat-relay/internal/infrastructure/cache/port"
	chat "chat-relay/internal/pkg/chat/application/domain"
	repository "chat-relay/internal/pkg/chat/persistence/repository/port"
)

// TranscriptCacheKey stores the serialized full transcript.
const TranscriptCacheKey = "chat:transcript"

// ListMessagesUseCase returns the transcript in ascending timestamp order.
// When a cache is wired it reads cache-aside, falling back to the store on a
// miss or cache failure; the cache is refreshed out of band by the
// transcript task.
type ListMessagesUseCase struct {
	Repo   repository.ChatRepository
	Cache  cacheport.Cache // nil disables caching
	Logger zerolog.Logger
}

func NewListMessagesUseCase(repo repository.ChatRepository, cache cacheport.Cache, logger zerolog.Logger) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo, Cache: cache, Logger: logger.With().Str("usecase", "list_messages").Logger()}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context) ([]chat.Message, error) {
	if uc.Cache != nil {
		cached, err := uc.Cache.Get(ctx, TranscriptCacheKey)
		switch {
		case err == nil:
			var msgs []chat.Message
			if err := json.Unmarshal([]byte(cached), &msgs); err == nil {
				return msgs, nil
			}
			uc.Logger.Warn().Msg("discarding undecodable transcript cache entry")
		case !errors.Is(err, cacheport.ErrMiss):
			uc.Logger.Warn().Err(err).Msg("transcript cache unavailable, falling back to store")
		}
	}

	msgs, err := uc.Repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if encoded, err := json.Marshal(msgs); err == nil {
			if err := uc.Cache.Set(ctx, TranscriptCacheKey, string(encoded), 0); err != nil {
				uc.Logger.Warn().Err(err).Msg("transcript cache set failed")
			}
		}
	}
	return msgs, nil
}
