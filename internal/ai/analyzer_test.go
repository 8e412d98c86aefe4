package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerpilot/careerpilot-api/internal/ai"
)

func TestAnalyze(t *testing.T) {
	model := &fakeModel{
		output: `{"matchScore": 85, "missingKeywords": ["terraform"], "improvementSuggestions": ["quantify impact"], "executiveSummary": "Strong match."}`,
	}
	analyzer := &ai.Analyzer{Model: model, Provider: "fake"}

	result, err := analyzer.Analyze(context.Background(), "resume text", "jd text")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.MatchScore != 85 {
		t.Errorf("Expected match score 85, got %d", result.MatchScore)
	}
	if len(result.MissingKeywords) != 1 || result.MissingKeywords[0] != "terraform" {
		t.Errorf("Unexpected missing keywords: %v", result.MissingKeywords)
	}

	if !model.lastOpts.JSONMode {
		t.Error("Expected JSON mode to be requested")
	}
	if model.lastOpts.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", model.lastOpts.Temperature)
	}
	if !strings.Contains(model.lastPrompt, "resume text") || !strings.Contains(model.lastPrompt, "jd text") {
		t.Error("Expected prompt to embed resume and JD text")
	}
}

func TestAnalyzeFencedOutput(t *testing.T) {
	model := &fakeModel{
		output: "```json\n{\"matchScore\": 40, \"missingKeywords\": [], \"improvementSuggestions\": [], \"executiveSummary\": \"Weak.\"}\n```",
	}
	analyzer := &ai.Analyzer{Model: model, Provider: "fake"}

	result, err := analyzer.Analyze(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("Analyze failed on fenced output: %v", err)
	}
	if result.MatchScore != 40 {
		t.Errorf("Expected match score 40, got %d", result.MatchScore)
	}
}

func TestAnalyzeProviderFailure(t *testing.T) {
	analyzer := &ai.Analyzer{Model: &fakeModel{err: errFakeProvider}, Provider: "fake"}

	_, err := analyzer.Analyze(context.Background(), "resume", "jd")
	if !errors.Is(err, ai.ErrProvider) {
		t.Errorf("Expected ErrProvider, got %v", err)
	}
}

func TestAnalyzeUnparseableOutput(t *testing.T) {
	analyzer := &ai.Analyzer{Model: &fakeModel{output: "I cannot help with that."}, Provider: "fake"}

	_, err := analyzer.Analyze(context.Background(), "resume", "jd")
	if !errors.Is(err, ai.ErrProvider) {
		t.Errorf("Expected ErrProvider for unparseable output, got %v", err)
	}
}

func TestAnalyzeTruncatesLongInputs(t *testing.T) {
	model := &fakeModel{
		output: `{"matchScore": 10, "missingKeywords": [], "improvementSuggestions": [], "executiveSummary": "ok"}`,
	}
	analyzer := &ai.Analyzer{Model: model, Provider: "fake"}

	longResume := strings.Repeat("r", ai.MaxResumePromptLen+500)
	longJD := strings.Repeat("j", ai.MaxJDPromptLen+500)
	if _, err := analyzer.Analyze(context.Background(), longResume, longJD); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if strings.Contains(model.lastPrompt, strings.Repeat("r", ai.MaxResumePromptLen+1)) {
		t.Error("Expected resume text to be truncated in prompt")
	}
	if strings.Contains(model.lastPrompt, strings.Repeat("j", ai.MaxJDPromptLen+1)) {
		t.Error("Expected JD text to be truncated in prompt")
	}
}

func TestPrepare(t *testing.T) {
	model := &fakeModel{
		output: `{"keyTopics": ["Distributed systems"], "likelyInterviewQuestions": ["How do you scale a queue?"], "preparationChecklist": ["Review system design"]}`,
	}
	analyzer := &ai.Analyzer{Model: model, Provider: "fake"}

	plan, err := analyzer.Prepare(context.Background(), "Acme", "Backend Engineer", "jd text")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(plan.KeyTopics) != 1 || plan.KeyTopics[0] != "Distributed systems" {
		t.Errorf("Unexpected key topics: %v", plan.KeyTopics)
	}
	if model.lastOpts.Temperature != 0.4 {
		t.Errorf("Expected temperature 0.4, got %v", model.lastOpts.Temperature)
	}
	if !strings.Contains(model.lastPrompt, "Acme") {
		t.Error("Expected company name in prompt")
	}
}

func TestPrepareDefaultCompany(t *testing.T) {
	model := &fakeModel{
		output: `{"keyTopics": [], "likelyInterviewQuestions": [], "preparationChecklist": []}`,
	}
	analyzer := &ai.Analyzer{Model: model, Provider: "fake"}

	if _, err := analyzer.Prepare(context.Background(), "", "Backend Engineer", "jd"); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !strings.Contains(model.lastPrompt, "a specific company") {
		t.Error("Expected generic company phrasing when none given")
	}
}

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := ai.CleanJSON(c.in); got != c.want {
			t.Errorf("CleanJSON(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
