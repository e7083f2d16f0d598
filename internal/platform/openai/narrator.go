// Package openai implements generation.Narrator on the OpenAI Responses API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duetdiary/duet-api/internal/config"
	"github.com/duetdiary/duet-api/internal/generation"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gpt-4o-mini"

	maxOutputTokens       = 800
	incompleteFilterCause = "content_filter"
)

// responder is the part of the Responses service the narrator uses.
type responder interface {
	New(ctx context.Context, body responses.ResponseNewParams, opts ...option.RequestOption) (*responses.Response, error)
}

// Narrator writes weekly narratives with an OpenAI model.
type Narrator struct {
	responses responder
	model     string
	policy    generation.RetryPolicy
	logger    *slog.Logger
}

var _ generation.Narrator = (*Narrator)(nil)

// NewNarrator creates an OpenAI client from cfg.
func NewNarrator(cfg config.LLMConfig, logger *slog.Logger) (*Narrator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	client := openaisdk.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return newNarrator(&client.Responses, cfg, logger), nil
}

func newNarrator(r responder, cfg config.LLMConfig, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}
	return &Narrator{
		responses: r,
		model:     model,
		policy:    generation.NewRetryPolicy(cfg.MaxRetries, cfg.RetryDelaySeconds),
		logger:    logger.With(slog.String("component", "openai_narrator"), slog.String("model", model)),
	}
}

// Narrate implements generation.Narrator.
func (n *Narrator) Narrate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", generation.ErrInvalidConfig)
	}

	params := responses.ResponseNewParams{
		Model:           n.model,
		MaxOutputTokens: openaisdk.Int(maxOutputTokens),
		Instructions:    openaisdk.String(generation.SystemInstruction),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	text, err := generation.CallWithRetry(ctx, n.policy, n.logger, func(ctx context.Context) (string, error) {
		resp, err := n.responses.New(ctx, params)
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

func responseText(resp *responses.Response) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if string(resp.IncompleteDetails.Reason) == incompleteFilterCause {
		return "", fmt.Errorf("%w: response filtered", generation.ErrContentBlocked)
	}

	text := generation.CleanNarrative(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("%w: empty output", generation.ErrInvalidResponse)
	}
	return text, nil
}
