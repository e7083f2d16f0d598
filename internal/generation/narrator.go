package generation

import (
	"context"
	"strings"
)

// Narrator defines the interface for turning a weekly insight prompt into a
// short narrative. This interface is the boundary between the application core
// and external LLM services.
type Narrator interface {
	// Narrate returns the generated narrative for prompt.
	//
	// Errors wrap one of the sentinels in errors.go so callers can decide
	// whether to retry or surface the failure.
	Narrate(ctx context.Context, prompt string) (string, error)
}

// NarratorFunc adapts a function to the Narrator interface.
type NarratorFunc func(ctx context.Context, prompt string) (string, error)

// Narrate calls f.
func (f NarratorFunc) Narrate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// CleanNarrative trims model output and strips a surrounding markdown code fence.
func CleanNarrative(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// SystemInstruction is sent to every provider ahead of the prompt.
const SystemInstruction = "당신은 커플 관계 코치입니다. 아래의 주간 지표만 근거로 " +
	"두 사람에게 따뜻하고 구체적인 3~5문장의 한국어 요약과 한 가지 실천 제안을 작성하세요. " +
	"지표에 없는 사실은 추측하지 마세요."
