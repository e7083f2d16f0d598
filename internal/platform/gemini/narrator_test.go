package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/duetdiary/duet-api/internal/config"
	"github.com/duetdiary/duet-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	model     string
	prompt    string
	config    *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testNarrator(models *fakeModels) *Narrator {
	return newNarrator(models, config.LLMConfig{MaxRetries: 1, RetryDelaySeconds: 1},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNarrate(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("```\n서로를 잘 챙긴 한 주였어요.\n```")}}
	n := testNarrator(models)

	got, err := n.Narrate(context.Background(), "[기간]\n2024-01-01 ~ 2024-01-07")

	require.NoError(t, err)
	assert.Equal(t, "서로를 잘 챙긴 한 주였어요.", got)
	assert.Equal(t, DefaultModel, models.model)
	assert.Equal(t, "[기간]\n2024-01-01 ~ 2024-01-07", models.prompt)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, generation.SystemInstruction, models.config.SystemInstruction.Parts[0].Text)
}

func TestNarrateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		models    *fakeModels
		prompt    string
		wantErr   error
		wantCalls int
	}{
		{
			name:    "empty prompt",
			models:  &fakeModels{},
			prompt:  " ",
			wantErr: generation.ErrInvalidConfig,
		},
		{
			name: "safety block",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}}},
			prompt:    "p",
			wantErr:   generation.ErrContentBlocked,
			wantCalls: 1,
		},
		{
			name:      "no candidates",
			models:    &fakeModels{responses: []*genai.GenerateContentResponse{{}}},
			prompt:    "p",
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
		{
			name:      "blank text",
			models:    &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  ")}},
			prompt:    "p",
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := testNarrator(tc.models).Narrate(context.Background(), tc.prompt)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantCalls, tc.models.calls)
		})
	}
}

func TestNarrateRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{
		errs:      []error{errors.New("503 service unavailable"), nil},
		responses: []*genai.GenerateContentResponse{nil, textResponse("ok")},
	}
	n := testNarrator(models)
	n.policy.BaseDelay = 0

	got, err := n.Narrate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, models.calls)
}

func TestNewNarratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewNarrator(context.Background(), config.LLMConfig{Provider: "gemini"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
