package handlers

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/careerpilot/careerpilot-api/internal/ai"
	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

// AIHandler serves the analysis, preparation and generation endpoints. The
// first two return JSON; generation streams plain text chunks as the
// provider produces them.
type AIHandler struct {
	DB        *gorm.DB
	Analyzer  *ai.Analyzer
	Generator *ai.Generator
}

type analyzeRequest struct {
	ResumeText    string `json:"resumeText"`
	JDText        string `json:"jdText"`
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
	ResumeID      string `json:"resumeId"`
}

// Analyze handles POST /api/ai/analyze
// @Summary Analyze a resume against a job description
// @Description Scores the resume against the JD and returns gaps and suggestions
// @Tags AI
// @Accept json
// @Produce json
// @Param body body analyzeRequest true "Analysis input"
// @Success 200 {object} ai.Analysis
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ai/analyze [post]
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var body analyzeRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}
	if strings.TrimSpace(body.JDText) == "" {
		return utils.ErrorResponse(c, "Missing JD text", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	// Older clients pass the owner id in the body; a session wins when present.
	owner := ownerID(c)
	if owner == "" {
		owner = body.UserID
	}

	src := services.ResumeSourceFromRequest(body.ResumeText, body.ResumeID)
	resumeText, err := services.ResolveResumeText(h.DB, src, owner)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) || errors.Is(err, services.ErrNoResume) {
			return utils.ErrorResponse(c, "Please upload a resume first or log in.", fiber.StatusBadRequest, "careerpilot.resume.missing")
		}
		return utils.ErrorResponse(c, "Failed to analyze resume", fiber.StatusInternalServerError, "analyzeResume")
	}

	analysis, err := h.Analyzer.Analyze(c.Context(), resumeText, body.JDText)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to analyze resume", fiber.StatusInternalServerError, "analyzeResume")
	}

	if owner != "" {
		services.LogAIRequest(h.DB, &owner, h.Analyzer.Provider, "analysis_v1", 0)
	}
	if body.ApplicationID != "" && ownerID(c) != "" {
		services.CacheAnalysis(h.DB, body.ApplicationID, ownerID(c), analysis)
	}

	return c.Status(fiber.StatusOK).JSON(analysis)
}

type generateRequest struct {
	Type          string `json:"type"`
	ResumeText    string `json:"resumeText"`
	JDText        string `json:"jdText"`
	ApplicationID string `json:"applicationId"`
	ResumeID      string `json:"resumeId"`
}

// Generate handles POST /api/ai/generate
// @Summary Generate an application artifact
// @Description Streams a cover letter, LinkedIn message or cold email as plain text
// @Tags AI
// @Accept json
// @Produce plain
// @Param body body generateRequest true "Generation input"
// @Success 200 {string} string "streamed artifact text"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ai/generate [post]
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	var body generateRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	contentType, err := models.ParseContentType(body.Type)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "careerpilot.validation.contentType")
	}
	if strings.TrimSpace(body.JDText) == "" {
		return utils.ErrorResponse(c, "Missing JD text", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	owner := ownerID(c)
	src := services.ResumeSourceFromRequest(body.ResumeText, body.ResumeID)
	resumeText, err := services.ResolveResumeText(h.DB, src, owner)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) || errors.Is(err, services.ErrNoResume) {
			return utils.ErrorResponse(c, "Please upload a resume first or log in.", fiber.StatusBadRequest, "careerpilot.resume.missing")
		}
		return utils.ErrorResponse(c, "Failed to generate content", fiber.StatusInternalServerError, "generateContent")
	}

	// Anonymous callers draw from the per-IP guest allowance. The counter
	// only moves for admitted requests.
	if owner == "" {
		if err := services.AdmitGuestRequest(h.DB, clientIP(c)); err != nil {
			if errors.Is(err, services.ErrQuotaExceeded) {
				return utils.ErrorResponse(c, "Free limit reached. Please register to continue.", fiber.StatusForbidden, "careerpilot.quota.guest")
			}
			return utils.ErrorResponse(c, "Failed to generate content", fiber.StatusInternalServerError, "generateContent")
		}
	}

	db := h.DB
	generator := h.Generator
	jdText := body.JDText
	applicationID := body.ApplicationID
	feature := "generate_" + strings.ToLower(string(contentType))

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		result, err := generator.Generate(ctx, contentType, resumeText, jdText, func(chunk []byte) error {
			if _, werr := w.Write(chunk); werr != nil {
				return werr
			}
			return w.Flush()
		})
		if err != nil {
			// Provider failure or a client that went away mid-stream.
			// Either way the artifact never finished, so nothing is
			// recorded against it.
			slog.Warn("generation stream aborted", "error", err)
			return
		}

		var loggedOwner *string
		if owner != "" {
			loggedOwner = &owner
		}
		services.LogAIRequest(db, loggedOwner, generator.Provider, feature, result.TotalTokens)

		if applicationID != "" && owner != "" {
			if err := services.SaveGeneratedContent(db, applicationID, contentType, result.Text); err != nil {
				slog.Warn("failed to save generated content", "applicationId", applicationID, "error", err)
			}
		}
	}))

	return nil
}

type preparationRequest struct {
	CompanyName string `json:"companyName"`
	RoleTitle   string `json:"roleTitle"`
	JDText      string `json:"jdText"`
}

// Preparation handles POST /api/ai/preparation
// @Summary Build an interview preparation plan
// @Description Returns key topics, likely questions and a preparation checklist
// @Tags AI
// @Accept json
// @Produce json
// @Param body body preparationRequest true "Preparation input"
// @Success 200 {object} ai.PreparationPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ai/preparation [post]
func (h *AIHandler) Preparation(c *fiber.Ctx) error {
	var body preparationRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}
	if strings.TrimSpace(body.RoleTitle) == "" || strings.TrimSpace(body.JDText) == "" {
		return utils.ErrorResponse(c, "Missing required fields: roleTitle and jdText are mandatory.", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	plan, err := h.Analyzer.Prepare(c.Context(), body.CompanyName, body.RoleTitle, body.JDText)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to generate preparation plan", fiber.StatusInternalServerError, "preparationPlan")
	}

	if owner := ownerID(c); owner != "" {
		services.LogAIRequest(h.DB, &owner, h.Analyzer.Provider, "preparation_v1", 0)
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}
