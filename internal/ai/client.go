// Package ai wraps the LLM providers behind two narrow roles: an analyzer
// producing schema-conformant JSON and a generator streaming long-form text.
// Both sides accept any llms.Model so tests can substitute fakes.
package ai

import (
	"context"
	"fmt"

	"github.com/careerpilot/careerpilot-api/internal/config"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Clients bundles the configured provider models.
type Clients struct {
	Analyzer  *Analyzer
	Generator *Generator
}

// NewClients initializes the provider clients from configuration. The
// analysis side runs Google AI in JSON mode; generation streams from OpenAI.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	analysisModel, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GoogleAPIKey),
		googleai.WithDefaultModel(cfg.AnalysisModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis model client: %w", err)
	}

	generationModel, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.GenerationModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation model client: %w", err)
	}

	return &Clients{
		Analyzer:  &Analyzer{Model: analysisModel, Provider: cfg.AnalysisModel},
		Generator: &Generator{Model: generationModel, Provider: "openai"},
	}, nil
}
