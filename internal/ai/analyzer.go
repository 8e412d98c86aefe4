package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// ErrProvider marks any upstream model failure, including output the caller
// cannot parse. Provider details stay server-side; handlers answer with a
// generic message.
var ErrProvider = errors.New("ai provider failure")

// Analysis is the structured result of a resume/JD match analysis.
type Analysis struct {
	MatchScore             int      `json:"matchScore"`
	MissingKeywords        []string `json:"missingKeywords"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
	ExecutiveSummary       string   `json:"executiveSummary"`
}

// PreparationPlan is the structured result of an interview-prep request.
type PreparationPlan struct {
	KeyTopics                []string `json:"keyTopics"`
	LikelyInterviewQuestions []string `json:"likelyInterviewQuestions"`
	PreparationChecklist     []string `json:"preparationChecklist"`
}

// Analyzer runs JSON-mode model calls and parses the structured output.
type Analyzer struct {
	Model    llms.Model
	Provider string
}

// Analyze compares resume text against a job description. Inputs are bounded
// to MaxResumePromptLen/MaxJDPromptLen before the prompt is built.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (*Analysis, error) {
	prompt := fmt.Sprintf(analysisPrompt,
		truncate(resumeText, MaxResumePromptLen),
		truncate(jdText, MaxJDPromptLen),
	)

	out, err := llms.GenerateFromSinglePrompt(ctx, a.Model, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	var result Analysis
	if err := json.Unmarshal([]byte(CleanJSON(out)), &result); err != nil {
		return nil, fmt.Errorf("%w: unparseable analysis output: %v", ErrProvider, err)
	}
	return &result, nil
}

// Prepare builds an interview preparation guide for a role. companyName may
// be empty; the prompt falls back to a generic phrasing.
func (a *Analyzer) Prepare(ctx context.Context, companyName, roleTitle, jdText string) (*PreparationPlan, error) {
	if companyName == "" {
		companyName = "a specific company"
	}
	prompt := fmt.Sprintf(preparationPrompt,
		companyName,
		roleTitle,
		truncate(jdText, MaxJDPromptLen),
	)

	out, err := llms.GenerateFromSinglePrompt(ctx, a.Model, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0.4),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	var plan PreparationPlan
	if err := json.Unmarshal([]byte(CleanJSON(out)), &plan); err != nil {
		return nil, fmt.Errorf("%w: unparseable preparation output: %v", ErrProvider, err)
	}
	return &plan, nil
}
