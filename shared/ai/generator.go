package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Generator turns a prompt into free-form text.
type Generator interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator wraps the Gemini client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GeminiGenerator) Name() string  { return "Gemini" }
func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	g.logger.Debug("Generating with Gemini", zap.String("model", g.model), zap.Int("prompt_length", len(prompt)))

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}

	return result.Text(), nil
}

// OpenAIGenerator wraps the OpenAI chat completion client.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIGenerator returns nil when apiKey is empty.
func NewOpenAIGenerator(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) *OpenAIGenerator {
	if apiKey == "" {
		return nil
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)

	return &OpenAIGenerator{
		client: &client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIGenerator) Name() string  { return "OpenAI" }
func (o *OpenAIGenerator) Model() string { return o.model }

func (o *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	o.logger.Debug("Generating with OpenAI", zap.String("model", o.model), zap.Int("prompt_length", len(prompt)))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	o.logger.Debug("OpenAI response received",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
