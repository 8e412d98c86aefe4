package ai_test

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a canned llms.Model. It records the last prompt and resolved
// call options, emits chunks through the streaming func when one is set, and
// returns output as the single choice.
type fakeModel struct {
	output     string
	chunks     []string
	info       map[string]any
	err        error
	lastPrompt string
	lastOpts   llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	f.lastOpts = opts

	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if len(last.Parts) > 0 {
			if text, ok := last.Parts[0].(llms.TextContent); ok {
				f.lastPrompt = text.Text
			}
		}
	}

	if f.err != nil {
		return nil, f.err
	}

	if opts.StreamingFunc != nil {
		for _, chunk := range f.chunks {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: f.output, GenerationInfo: f.info},
		},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

var errFakeProvider = errors.New("fake provider down")
