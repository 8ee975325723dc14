package usecase

import (
	"context"
	"time"

	cacheport "chat-relay/internal/infrastructure/cache/port"
	"chat-relay/internal/pkg/assistant"
	chat "chat-relay/internal/pkg/chat/application/domain"
)

type fakeChatRepository struct {
	saved    []chat.Draft
	stored   []chat.Message
	saveErr  error
	listErr  error
	saveFunc func(chat.Draft) chat.Message
}

func (f *fakeChatRepository) SaveMessage(_ context.Context, draft chat.Draft) (chat.Message, error) {
	if f.saveErr != nil {
		return chat.Message{}, f.saveErr
	}
	f.saved = append(f.saved, draft)
	if f.saveFunc != nil {
		return f.saveFunc(draft), nil
	}
	return chat.Message{
		ID:        "m1",
		Content:   draft.Content,
		UserID:    draft.UserID,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:      chat.Author{Name: "Alice"},
	}, nil
}

func (f *fakeChatRepository) ListMessages(context.Context) ([]chat.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stored, nil
}

type fakeUserRepository struct {
	created   []string
	createErr error
	user      chat.User
}

func (f *fakeUserRepository) Create(_ context.Context, name string) (chat.User, error) {
	if f.createErr != nil {
		return chat.User{}, f.createErr
	}
	f.created = append(f.created, name)
	if f.user.ID != "" {
		return f.user, nil
	}
	return chat.User{ID: "u1", Name: name, CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (chat.User, error) {
	return chat.User{ID: id, Name: "Alice"}, nil
}

type fakeCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

type fakeProvider struct {
	lastReq *assistant.ChatRequest
	reply   string
	err     error
}

func (f *fakeProvider) Chat(_ context.Context, req *assistant.ChatRequest) (*assistant.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.ChatResponse{Content: f.reply, Model: "test-model"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }
