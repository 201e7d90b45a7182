package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/transport"
	"github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
)

const (
	maxTokens   = 2500
	temperature = 0.3
	maxRetries  = 3
)

type openAISvc struct {
	cl        *openai.Client
	modelName string
	backoff   func() retry.Backoff
}

var _ Service = (*openAISvc)(nil)

func newOpenAIService(cfg *config.Config) *openAISvc {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = transport.NewClient(config.Version())

	return &openAISvc{
		cl:        openai.NewClientWithConfig(clientConfig),
		modelName: cfg.Model,
		backoff:   defaultBackoff,
	}
}

func defaultBackoff() retry.Backoff {
	b := retry.NewFibonacci(1 * time.Second)
	return retry.WithMaxRetries(maxRetries, b)
}

func (o *openAISvc) Model() string {
	return o.modelName
}

func (o *openAISvc) request(prompt *llm.Prompt) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	return openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// retryable reports whether the api error is worth another attempt.
func retryable(err error) bool {
	var oaiErr *openai.APIError
	if !errors.As(err, &oaiErr) {
		return false
	}
	switch {
	case oaiErr.HTTPStatusCode == http.StatusBadRequest,
		oaiErr.HTTPStatusCode == http.StatusTooManyRequests,
		oaiErr.HTTPStatusCode >= http.StatusInternalServerError:
		return true
	}
	return false
}

func (o *openAISvc) Generate(ctx context.Context, prompt *llm.Prompt) (string, error) {
	if prompt == nil {
		return "", ErrNilPrompt
	}

	var chatResponse openai.ChatCompletionResponse
	if err := retry.Do(ctx, o.backoff(), func(ctx context.Context) error {
		var gerr error
		chatResponse, gerr = o.cl.CreateChatCompletion(ctx, o.request(prompt))
		if retryable(gerr) {
			slog.Debug("retry: openai request failed", "model", o.modelName, "err", gerr)
			return retry.RetryableError(gerr)
		}
		return gerr
	}); err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrEmptyResponse)
	}

	msg := chatResponse.Choices[0].Message.Content
	if len(msg) == 0 {
		return "", ErrEmptyResponse
	}
	return msg, nil
}

func (o *openAISvc) Stream(ctx context.Context, prompt *llm.Prompt) (llm.ResponseStreamer, error) {
	if prompt == nil {
		return nil, ErrNilPrompt
	}

	req := o.request(prompt)
	req.Stream = true
	stream, err := o.cl.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai stream failed: %w", err)
	}
	return llm.NewStreamer(stream), nil
}
