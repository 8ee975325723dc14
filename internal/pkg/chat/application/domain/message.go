package chat

import (
	"errors"
	"strings"
	"time"
)

// AssistantUserID is the synthetic participant whose transcript entries map
// to assistant-role turns when building completion prompts.
const AssistantUserID = "ai"

var (
	// ErrEmptyContent rejects chat payloads whose content is blank.
	ErrEmptyContent = errors.New("chat: empty message content")
	// ErrMissingSender rejects messages with no bound participant identity.
	ErrMissingSender = errors.New("chat: sender id is required")
)

// Message is one immutable entry in the canonical transcript. ID and
// Timestamp are assigned by the store on insert; the relay never mutates a
// message after that.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	User      Author    `json:"user"`
}

// Author carries the sender's display name alongside each message, the shape
// clients render without a second lookup.
type Author struct {
	Name string `json:"name"`
}

// Draft is a validated, not-yet-persisted chat message.
type Draft struct {
	Content string
	UserID  string
}

// NewDraft validates inbound chat content against its bound sender identity.
// Content is trimmed; blank content is rejected rather than persisted as an
// empty row.
func NewDraft(content, userID string) (Draft, error) {
	if userID == "" {
		return Draft{}, ErrMissingSender
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Draft{}, ErrEmptyContent
	}
	return Draft{Content: content, UserID: userID}, nil
}
