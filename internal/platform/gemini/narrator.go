package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duetdiary/duet-api/internal/config"
	"github.com/duetdiary/duet-api/internal/generation"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models the narrator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Narrator writes weekly narratives with Gemini.
type Narrator struct {
	models contentGenerator
	model  string
	policy generation.RetryPolicy
	logger *slog.Logger
}

var _ generation.Narrator = (*Narrator)(nil)

// NewNarrator creates a Gemini client from cfg.
func NewNarrator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Narrator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newNarrator(client.Models, cfg, logger), nil
}

func newNarrator(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}
	return &Narrator{
		models: models,
		model:  model,
		policy: generation.NewRetryPolicy(cfg.MaxRetries, cfg.RetryDelaySeconds),
		logger: logger.With(slog.String("component", "gemini_narrator"), slog.String("model", model)),
	}
}

// Narrate implements generation.Narrator.
func (n *Narrator) Narrate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", generation.ErrInvalidConfig)
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemInstruction}},
		},
	}

	text, err := generation.CallWithRetry(ctx, n.policy, n.logger, func(ctx context.Context) (string, error) {
		resp, err := n.models.GenerateContent(ctx, n.model, genai.Text(prompt), genConfig)
		if err != nil {
			return "", err
		}
		return responseText(resp)
	})
	if err != nil {
		if errors.Is(err, generation.ErrTransientFailure) || generation.IsPermanent(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	n.logger.InfoContext(ctx, "narrative generated", slog.Int("length", len(text)))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0:
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, resp.Candidates[0].FinishReason)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := generation.CleanNarrative(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", generation.ErrInvalidResponse)
	}
	return text, nil
}
