package usecase

import (
	"context"
	"fmt"

	"chat-relay/internal/pkg/assistant"
	chat "chat-relay/internal/pkg/chat/application/domain"
)

// systemInstruction is the standing prompt prefixed to every transcript.
const systemInstruction = "You are a helpful assistant in a chat application."

// TranscriptEntry is one message as visible to the requester.
type TranscriptEntry struct {
	UserID   string
	Content  string
	UserName string
}

// AskAssistantInput carries the requester-visible transcript. The transcript
// must be non-empty.
type AskAssistantInput struct {
	Transcript []TranscriptEntry
}

// AskAssistantUseCase turns the visible transcript into a prompt and invokes
// the completion service once. The reply goes only to the requester: it is
// never persisted and never broadcast.
type AskAssistantUseCase struct {
	Provider assistant.Provider
}

func NewAskAssistantUseCase(provider assistant.Provider) *AskAssistantUseCase {
	return &AskAssistantUseCase{Provider: provider}
}

// Execute returns the single generated reply, or an error wrapping
// ErrCompletion on any service failure. It never retries and never returns a
// partial reply.
func (uc *AskAssistantUseCase) Execute(ctx context.Context, in AskAssistantInput) (string, error) {
	if len(in.Transcript) == 0 {
		return "", fmt.Errorf("messages are required")
	}

	req := &assistant.ChatRequest{
		SystemPrompt: systemInstruction,
		Messages:     buildTurns(in.Transcript),
	}

	resp, err := uc.Provider.Chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	return resp.Content, nil
}

// buildTurns maps transcript entries to prompt turns: entries authored by
// the synthetic assistant become assistant-role turns, everything else a
// user-role turn labeled with the human author's display name.
func buildTurns(transcript []TranscriptEntry) []assistant.Message {
	turns := make([]assistant.Message, 0, len(transcript))
	for _, entry := range transcript {
		if entry.UserID == chat.AssistantUserID {
			turns = append(turns, assistant.Message{Role: "assistant", Content: entry.Content})
			continue
		}
		turns = append(turns, assistant.Message{
			Role:    "user",
			Content: fmt.Sprintf("%s: %s", entry.UserName, entry.Content),
		})
	}
	return turns
}
