package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/services"
)

type ScreeningHandler struct {
	screening services.ScreeningService
}

func NewScreeningHandler(screening services.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{screening: screening}
}

// HandleScreen handles POST /ai-screening. With ?stream=true the pipeline's
// progress is delivered as SSE frames and the final frame's data.analysis
// carries the verdict; without it the handler blocks and returns the verdict
// as one response.
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "Invalid request payload")
	}

	if req.ApplicationID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_APPLICATION_ID", "Application ID is required")
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_APPLICATION_ID", "Invalid application ID format")
	}

	if c.QueryBool("stream") {
		// The run outlives this handler return: the body stream writer is
		// invoked during response flush, so the run cannot borrow the
		// request's context.
		run := h.screening.Screen(context.Background(), applicationID)
		return streamEvents(c, run.Events())
	}

	run := h.screening.Screen(c.UserContext(), applicationID)
	for range run.Events() {
		// Transport-less mode; drain so the run never stalls.
	}

	verdict, err := run.Wait()
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return errorJSON(c, fiber.StatusNotFound, "APPLICATION_NOT_FOUND", "Application not found")
		case errors.Is(err, services.ErrJobNotFound):
			return errorJSON(c, fiber.StatusNotFound, "JOB_NOT_FOUND", "Job posting not found")
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "SCREENING_FAILED", "Failed to perform AI screening")
		}
	}

	return c.JSON(models.ScreenResponse{
		Success:  true,
		Analysis: verdict,
	})
}
