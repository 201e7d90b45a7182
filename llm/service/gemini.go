package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/transport"
	"google.golang.org/genai"
)

type geminiSvc struct {
	client    *genai.Client
	modelName string
}

var _ Service = (*geminiSvc)(nil)

func newGeminiService(ctx context.Context, cfg *config.Config) (*geminiSvc, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: transport.NewClient(config.Version()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiSvc{
		client:    client,
		modelName: cfg.Model,
	}, nil
}

func (g *geminiSvc) Model() string {
	return g.modelName
}

func (g *geminiSvc) generateConfig(prompt *llm.Prompt) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxTokens,
	}
	if prompt.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}
	return gc
}

func (g *geminiSvc) Generate(ctx context.Context, prompt *llm.Prompt) (string, error) {
	if prompt == nil {
		return "", ErrNilPrompt
	}

	result, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt.User), g.generateConfig(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *geminiSvc) Stream(ctx context.Context, prompt *llm.Prompt) (llm.ResponseStreamer, error) {
	if prompt == nil {
		return nil, ErrNilPrompt
	}

	seq := g.client.Models.GenerateContentStream(ctx, g.modelName, genai.Text(prompt.User), g.generateConfig(prompt))
	return llm.NewGenAIStreamer(seq), nil
}
