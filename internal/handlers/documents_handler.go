package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/services"
)

type DocumentsHandler struct {
	analysis services.DocumentAnalysisService
}

func NewDocumentsHandler(analysis services.DocumentAnalysisService) *DocumentsHandler {
	return &DocumentsHandler{analysis: analysis}
}

// HandleAnalyzeDocuments handles POST /analyze-documents. Accepts either bare
// file URLs or file_data entries that pair each URL with its requirement
// label. With ?stream=true per-document progress is streamed and the final
// frame's data holds the extracted fields directly.
func (h *DocumentsHandler) HandleAnalyzeDocuments(c *fiber.Ctx) error {
	var req models.AnalyzeDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "Invalid request payload")
	}

	files := requestedFiles(req)
	if len(files) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "NO_FILES", "No file URLs provided")
	}

	if c.QueryBool("stream") {
		run := h.analysis.Analyze(context.Background(), files)
		return streamEvents(c, run.Events())
	}

	run := h.analysis.Analyze(c.UserContext(), files)
	for range run.Events() {
	}

	extracted, err := run.Wait()
	if err != nil {
		if errors.Is(err, services.ErrNoTextExtracted) {
			return errorJSON(c, fiber.StatusBadRequest, "NO_TEXT_EXTRACTED", "Could not extract text from documents")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "ANALYSIS_FAILED", "Failed to analyze documents")
	}

	return c.JSON(models.AnalyzeDocumentsResponse{
		Success: true,
		Data:    extracted,
	})
}

func requestedFiles(req models.AnalyzeDocumentsRequest) []models.Attachment {
	var files []models.Attachment

	for _, fd := range req.FileData {
		if fd.FileURL == "" {
			continue
		}
		attachment := models.Attachment{FileURL: fd.FileURL}
		if fd.RequirementName != "" {
			name := fd.RequirementName
			attachment.RequirementName = &name
		}
		files = append(files, attachment)
	}

	for _, u := range req.FileURLs {
		if u == "" {
			continue
		}
		files = append(files, models.Attachment{FileURL: u})
	}

	return files
}
