package handler

import (
	"strings"

	"agri-match/internal/delivery/http/dto"
	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/domain/application"
	"agri-match/internal/pkg/response"
	"agri-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
	}

	created, err := h.uc.CreateApplication(c.Context(), usecase.CreateApplicationInput{
		JobID:       jobID,
		ApplicantID: userID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Created(c, "Application submitted", dto.NewApplicationResponse(created))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	updated, err := h.uc.UpdateApplicationStatus(c.Context(), usecase.UpdateApplicationStatusInput{
		ApplicationID: id,
		ActorID:       userID,
		Viewer:        viewerFromLocals(c),
		Status:        application.Status(strings.ToLower(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(updated))
}
