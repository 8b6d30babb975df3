package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/repositories"
	"hiretrack/screening-api/internal/services"
)

type ApplicationHandler struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
	worker  services.Worker
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	worker services.Worker,
) *ApplicationHandler {
	return &ApplicationHandler{
		appRepo: appRepo,
		jobRepo: jobRepo,
		worker:  worker,
	}
}

// HandleCreateApplication handles POST /applications. The screening run is
// fire-and-forget through the worker; submission never fails because
// screening would.
func (h *ApplicationHandler) HandleCreateApplication(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "Invalid request payload")
	}

	if req.JobID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_JOB_ID", "job_id is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_NAME", "first_name and last_name are required")
	}
	if req.Email == "" {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_EMAIL", "email is required")
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_JOB_ID", "Invalid job_id format")
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "JOB_NOT_FOUND", "Job posting not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load job posting")
	}

	application := &models.JobApplication{
		ID:           uuid.New(),
		JobPostingID: jobID,
		Status:       models.ApplicationStatusPending,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if req.MiddleName != "" {
		application.MiddleName = &req.MiddleName
	}
	if req.ApplicantImage != "" {
		application.ApplicantImage = &req.ApplicantImage
	}

	answers := make([]models.ScreeningAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.Question == "" {
			continue
		}
		answers = append(answers, models.ScreeningAnswer{
			ID:               uuid.New(),
			JobApplicationID: application.ID,
			Question:         a.Question,
			Answer:           a.Answer,
		})
	}

	attachments := make([]models.ApplicationAttachment, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		if att.FileURL == "" {
			continue
		}
		record := models.ApplicationAttachment{
			ID:               uuid.New(),
			JobApplicationID: application.ID,
			FileURL:          att.FileURL,
			FileName:         att.FileName,
		}
		if att.RequirementID != "" {
			if reqID, err := uuid.Parse(att.RequirementID); err == nil {
				record.JobRequirementID = &reqID
			}
		}
		attachments = append(attachments, record)
	}

	if err := h.appRepo.Create(application, answers, attachments); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create application")
	}

	h.worker.Enqueue(application.ID)

	return c.Status(fiber.StatusCreated).JSON(models.CreateApplicationResponse{
		Success:       true,
		ApplicationID: application.ID.String(),
		Message:       "Application submitted successfully",
	})
}
