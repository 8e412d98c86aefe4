package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/careerpilot/careerpilot-api/internal/parser"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Upload limits for resume PDFs.
const (
	maxResumeFileSize = 10 * 1024 * 1024 // 10MB
	minExtractedChars = 100
)

// ResumeHandler handles resume upload, listing and deletion. All routes
// require an authenticated owner.
type ResumeHandler struct {
	DB *gorm.DB
}

// Upload handles POST /api/resumes
// @Summary Upload a resume PDF
// @Description Extract text from a PDF resume and store it for the owner
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file (max 10MB)"
// @Param label formData string false "Resume label"
// @Success 200 {object} models.Resume
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "No file uploaded.", fiber.StatusBadRequest, "careerpilot.validation.file")
	}

	if fileHeader.Size > maxResumeFileSize {
		return utils.ErrorResponse(c, "File too large (Max 10MB).", fiber.StatusBadRequest, "careerpilot.validation.file")
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
		return utils.ErrorResponse(c, "Only PDF files are supported.", fiber.StatusBadRequest, "careerpilot.validation.file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, "Internal Server Error during upload", fiber.StatusInternalServerError, "uploadResume")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeFileSize+1))
	if err != nil {
		return utils.ErrorResponse(c, "Internal Server Error during upload", fiber.StatusInternalServerError, "uploadResume")
	}
	if len(data) > maxResumeFileSize {
		return utils.ErrorResponse(c, "File too large (Max 10MB).", fiber.StatusBadRequest, "careerpilot.validation.file")
	}

	text, err := parser.ExtractText(data)
	if err != nil {
		if errors.Is(err, parser.ErrNotPDF) || errors.Is(err, parser.ErrEmptyFile) {
			return utils.ErrorResponse(c, "Only PDF files are supported.", fiber.StatusBadRequest, "careerpilot.validation.file")
		}
		return utils.ErrorResponse(c, "Resume text too short or unreadable.", fiber.StatusUnprocessableEntity, "careerpilot.validation.text")
	}
	if len(strings.TrimSpace(text)) < minExtractedChars {
		return utils.ErrorResponse(c, "Resume text too short or unreadable.", fiber.StatusUnprocessableEntity, "careerpilot.validation.text")
	}

	label := c.FormValue("label")
	if label == "" {
		label = models.DefaultResumeLabel
	}

	resume, err := services.CreateResume(h.DB, ownerID(c), label, text)
	if err != nil {
		return utils.ErrorResponse(c, "Internal Server Error during upload", fiber.StatusInternalServerError, "uploadResume")
	}

	return c.Status(fiber.StatusOK).JSON(resume)
}

// List handles GET /api/resumes
// @Summary List resumes
// @Description List the authenticated owner's resumes, newest first
// @Tags Resumes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	resumes, err := services.ListResumes(h.DB, ownerID(c))
	if err != nil {
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "listResumes")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"resumes": resumes})
}

// Delete handles DELETE /api/resumes?id=
// @Summary Delete a resume
// @Description Delete a resume owned by the authenticated user
// @Tags Resumes
// @Produce json
// @Param id query string true "Resume ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /resumes [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, "Missing resume ID", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	if err := services.DeleteResume(h.DB, ownerID(c), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Resume not found")
		}
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "deleteResume")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
