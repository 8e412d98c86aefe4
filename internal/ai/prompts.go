package ai

import (
	"strings"

	"github.com/careerpilot/careerpilot-api/internal/models"
)

// Prompt size bounds. Cost/latency control, applied before every provider
// call so input can never grow unbounded.
const (
	MaxResumePromptLen = 20000
	MaxJDPromptLen     = 10000
)

const analysisPrompt = `Act as a Senior Technical Recruiter.
Compare the following Resume against the Job Description.

RESUME TEXT:
%s

JOB DESCRIPTION:
%s

Analyze the match.
Output a JSON object with this exact schema:
{
  "matchScore": number (0-100),
  "missingKeywords": [
    "string: critical hard skill 1",
    "string: critical hard skill 2"
  ],
  "improvementSuggestions": [
    "string: actionable advice 1",
    "string: actionable advice 2",
    "string: actionable advice 3"
  ],
  "executiveSummary": "string: 2 sentence verdict"
}`

const preparationPrompt = `Act as an Expert Technical Interview Coach.
Prepare a candidate for an interview at %s for the role of %s.

JOB DESCRIPTION:
%s

Based ONLY on the job description and standard industry expectations for this role, generate a preparation guide.

Return a JSON object with this exact schema:
{
  "keyTopics": [
    "string: A technical concept or domain knowledge specific to this JD to study"
  ],
  "likelyInterviewQuestions": [
    "string: A specific question likely to be asked based on the stack/responsibilities"
  ],
  "preparationChecklist": [
    "string: A concrete actionable step (e.g., 'Review System Design for High Scalability')"
  ]
}`

// systemPrompts keys the generation instruction by content type. Length and
// tone constraints live in the instruction, not in code.
var systemPrompts = map[models.ContentType]string{
	models.ContentCoverLetter:     "You are an expert career coach. Write a professional, concise cover letter based on the candidate's resume and the job description. The cover letter should be tailored to the specific role and company mentioned in the JD. Tone: Confident, professional, and humble. Structure it properly with placeholders for date and contact info if not provided.",
	models.ContentLinkedInMessage: "Write a short (under 300 characters) LinkedIn connection request message to a hiring manager or recruiter. It should be professional, warm, and mention why you're interested in the role based on the JD.",
	models.ContentColdEmail:       "Write a compelling cold email to a hiring manager. It should have a strong subject line, be brief, and highlight why your background (from the resume) makes you a great fit for the role (from the JD).",
}

// truncate bounds s to max bytes.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// CleanJSON strips markdown code fences some models wrap around JSON output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
