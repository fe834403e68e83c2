package httpclient

import (
	"context"

	"go.uber.org/zap"

	"polydash/internal/app/port"
)

type chatCompletionRequest struct {
	Model       string             `json:"model"`
	Messages    []port.ChatMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message port.ChatMessage `json:"message"`
	} `json:"choices"`
}

// LLMOptions configures the chat completions client.
type LLMOptions struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

type llmClientImpl struct {
	fetcher *Fetcher
	opts    LLMOptions
	logger  *zap.Logger
}

// NewLLMClient creates a client for an OpenAI-compatible chat completions API.
func NewLLMClient(fetcher *Fetcher, opts LLMOptions, logger *zap.Logger) port.LLMClient {
	return &llmClientImpl{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger.Named("LLMClient"),
	}
}

func (c *llmClientImpl) Complete(ctx context.Context, messages []port.ChatMessage) (string, error) {
	payload := chatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}
	req := Request{
		Path:   "/chat/completions",
		Header: map[string]string{"Authorization": "Bearer " + c.opts.APIKey},
	}

	var resp chatCompletionResponse
	if err := c.fetcher.PostJSON(ctx, req, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("Chat completion without content", zap.String("model", c.opts.Model))
		return "", port.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
