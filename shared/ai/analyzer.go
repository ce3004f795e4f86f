package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
	"playlist-insights/shared/config"
)

const emptyResponseMessage = "The AI returned an empty or invalid response."

// Analyzer produces playlist insights. Generators are tried in order; the
// first non-empty answer wins.
type Analyzer struct {
	generators []Generator
	logger     *zap.Logger
}

// NewAnalyzer wires Gemini first and, when enabled or when no Gemini key is
// configured, OpenAI after it. At least one key is required.
func NewAnalyzer(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*Analyzer, error) {
	var generators []Generator

	if cfg.GeminiAPIKey != "" {
		gemini, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		generators = append(generators, gemini)
	}

	if cfg.OpenAIAPIKey != "" && (cfg.EnableFallback || len(generators) == 0) {
		generators = append(generators, NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger))
	}

	if len(generators) == 0 {
		return nil, apperrors.NewValidationError("Please provide a Google Cloud API key to use AI features.", "ai.gemini_api_key", "")
	}

	return NewAnalyzerWith(logger, generators...), nil
}

// NewAnalyzerWith builds an Analyzer over explicit generators.
func NewAnalyzerWith(logger *zap.Logger, generators ...Generator) *Analyzer {
	return &Analyzer{
		generators: generators,
		logger:     logger,
	}
}

// GenerateInsight asks the configured providers for one insight about a
// completed analysis.
func (a *Analyzer) GenerateInsight(ctx context.Context, kind models.InsightKind, result *models.AnalysisResult) (*models.Insight, error) {
	if result == nil || len(result.Videos) == 0 {
		return nil, apperrors.NewValidationError("Analyze a playlist before generating insights.", "result", nil)
	}

	prompt, err := BuildPrompt(kind, result.PlaylistTitle(DefaultPlaylistTitle), result.Videos)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i, g := range a.generators {
		if i > 0 {
			a.logger.Warn("Falling back to next provider",
				zap.String("provider", g.Name()),
				zap.Error(lastErr),
			)
		}

		text, err := g.Generate(ctx, prompt)
		if err != nil {
			lastErr = apperrors.NewRemoteError(fmt.Sprintf("%s generation failed", g.Name()), strings.ToLower(g.Name()), "generate", err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			lastErr = apperrors.NewRemoteError(emptyResponseMessage, strings.ToLower(g.Name()), "generate", nil)
			continue
		}

		a.logger.Info("Insight generated",
			zap.String("kind", string(kind)),
			zap.String("provider", g.Name()),
			zap.Int("length", len(text)),
		)

		return &models.Insight{
			Kind:     kind,
			Text:     text,
			Provider: g.Name(),
			Model:    g.Model(),
		}, nil
	}

	if lastErr == nil {
		lastErr = apperrors.NewValidationError("Please provide a Google Cloud API key to use AI features.", "ai.gemini_api_key", "")
	}
	return nil, lastErr
}
