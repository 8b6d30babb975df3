package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/repositories"
)

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewAnalysisHandler(analysisRepo repositories.AnalysisRepository) *AnalysisHandler {
	return &AnalysisHandler{analysisRepo: analysisRepo}
}

// HandleListAnalyses handles GET /applications/:id/analyses, newest first.
func (h *AnalysisHandler) HandleListAnalyses(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_APPLICATION_ID", "Invalid application ID format")
	}

	analyses, err := h.analysisRepo.FindByApplicationID(applicationID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load analyses")
	}

	responses := make([]models.AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		responses = append(responses, toAnalysisResponse(a))
	}

	return c.JSON(fiber.Map{
		"application_id": applicationID.String(),
		"analyses":       responses,
	})
}

// HandleLatestAnalysis handles GET /applications/:id/analyses/latest.
func (h *AnalysisHandler) HandleLatestAnalysis(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_APPLICATION_ID", "Invalid application ID format")
	}

	analysis, err := h.analysisRepo.FindLatestByApplicationID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "ANALYSIS_NOT_FOUND", "No analysis found for this application")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load analysis")
	}

	return c.JSON(toAnalysisResponse(*analysis))
}

func toAnalysisResponse(a models.AIAnalysis) models.AnalysisResponse {
	response := models.AnalysisResponse{
		ID:            a.ID.String(),
		ApplicationID: a.JobApplicationID.String(),
		Score:         a.Score,
		Analysis:      a.Analysis,
		CreatedAt:     a.CreatedAt,
	}

	var verdict models.ScreeningVerdict
	if err := json.Unmarshal([]byte(a.ResultJSON), &verdict); err == nil {
		response.Result = &verdict
	}
	return response
}
