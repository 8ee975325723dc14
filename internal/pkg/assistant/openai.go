package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// OpenAIProvider implements Provider against the OpenAI chat completions API
// (or any endpoint speaking the same protocol).
type OpenAIProvider struct {
	config Config
	client *http.Client
	logger zerolog.Logger
}

// NewOpenAIProvider builds a provider from the given config, filling in
// endpoint/model/timeout defaults.
func NewOpenAIProvider(logger zerolog.Logger, cfg Config) *OpenAIProvider {
	cfg = cfg.withDefaults()
	return &OpenAIProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("provider", "openai").Logger(),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Chat sends one completion request and returns the first choice.
func (p *OpenAIProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if p.config.APIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	apiReq := chatCompletionRequest{Model: req.Model}
	if apiReq.Model == "" {
		apiReq.Model = p.config.Model
	}
	if req.SystemPrompt != "" {
		apiReq.Messages = append(apiReq.Messages, Message{Role: "system", Content: req.SystemPrompt})
	}
	apiReq.Messages = append(apiReq.Messages, req.Messages...)

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := readLimitedBody(resp.Body)
		p.logger.Warn().Int("status", resp.StatusCode).Msg("completion call rejected")
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(errBody))
	}

	var apiResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices in response")
	}

	return &ChatResponse{
		Content: apiResp.Choices[0].Message.Content,
		Model:   apiResp.Model,
	}, nil
}

type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
