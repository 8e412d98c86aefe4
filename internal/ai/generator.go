package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/tmc/langchaingo/llms"
)

// StreamFunc receives each chunk of generated text as the provider produces
// it. Returning an error aborts the generation; the caller then gets that
// error back and no completion side effects run.
type StreamFunc func(chunk []byte) error

// GenerateResult is only produced for a clean, non-aborted finish.
type GenerateResult struct {
	Text        string
	TotalTokens int
}

// Generator streams long-form writing (cover letters, connection notes,
// cold emails) from the configured provider.
type Generator struct {
	Model    llms.Model
	Provider string
}

// Generate streams content of the given type to stream. The resume and JD
// text must already be resolved; quota and ownership checks happen upstream.
func (g *Generator) Generate(ctx context.Context, contentType models.ContentType, resumeText, jdText string, stream StreamFunc) (*GenerateResult, error) {
	system, ok := systemPrompts[contentType]
	if !ok {
		return nil, fmt.Errorf("no prompt template for content type %q", contentType)
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman,
			fmt.Sprintf("RESUME:\n%s\n\nJOB DESCRIPTION:\n%s",
				truncate(resumeText, MaxResumePromptLen),
				truncate(jdText, MaxJDPromptLen))),
	}

	var full strings.Builder
	resp, err := g.Model.GenerateContent(ctx, messages,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			full.Write(chunk)
			if stream != nil {
				return stream(chunk)
			}
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	text := full.String()
	if text == "" && len(resp.Choices) > 0 {
		text = resp.Choices[0].Content
	}

	tokens := totalTokens(resp)
	if tokens == 0 {
		tokens = CountTokens(text)
	}

	return &GenerateResult{Text: text, TotalTokens: tokens}, nil
}

// totalTokens pulls the usage total out of the provider response when the
// provider reports one.
func totalTokens(resp *llms.ContentResponse) int {
	if resp == nil || len(resp.Choices) == 0 {
		return 0
	}
	info := resp.Choices[0].GenerationInfo
	for _, key := range []string{"TotalTokens", "total_tokens"} {
		if v, ok := info[key]; ok {
			switch n := v.(type) {
			case int:
				return n
			case float64:
				return int(n)
			}
		}
	}
	return 0
}
