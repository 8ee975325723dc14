package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	cacheport "chat-relay/internal/infrastructure/cache/port"
	qport "chat-relay/internal/infrastructure/queue/port"
	"chat-relay/internal/pkg/chat/application/usecase"
	repository "chat-relay/internal/pkg/chat/persistence/repository/port"
)

// RefreshTranscriptTaskType names the queue task that rebuilds the cached
// transcript after new messages land. The task is purely a cache concern:
// persistence and fanout have already happened by the time it is enqueued.
const RefreshTranscriptTaskType = "chat:refresh_transcript"

// EnqueueRefreshTranscript schedules a transcript rebuild, best effort. The
// unique TTL coalesces bursts of messages into a single refresh.
func EnqueueRefreshTranscript(ctx context.Context, q qport.Client) error {
	_, err := q.Enqueue(ctx, qport.Task{Type: RefreshTranscriptTaskType, Payload: nil},
		qport.EnqueueOption{Queue: "chat", MaxRetry: 3, UniqueTTL: time.Second})
	return err
}

// RegisterRefreshTranscriptTask binds the rebuild handler: read the full
// transcript from the store and replace the cache entry.
func RegisterRefreshTranscriptTask(srv qport.Server, repo repository.ChatRepository, cache cacheport.Cache, logger zerolog.Logger) {
	log := logger.With().Str("task", RefreshTranscriptTaskType).Logger()

	srv.Register(RefreshTranscriptTaskType, func(ctx context.Context, t qport.Task) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		msgs, err := repo.ListMessages(ctx)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(msgs)
		if err != nil {
			return err
		}
		if err := cache.Set(ctx, usecase.TranscriptCacheKey, string(encoded), 0); err != nil {
			return err
		}
		log.Debug().Int("messages", len(msgs)).Msg("transcript cache refreshed")
		return nil
	})
}
