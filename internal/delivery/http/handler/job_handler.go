package handler

import (
	"strconv"
	"strings"

	"agri-match/internal/delivery/http/dto"
	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/domain/job"
	"agri-match/internal/pkg/response"
	"agri-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobFeedUsecase
}

func NewJobHandler(uc usecase.JobFeedUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	items, err := h.uc.ListJobs(c.Context(), usecase.ListJobsParams{
		Viewer: viewerFromLocals(c).WithStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewJobResponse(it))
	}
	return response.Page(c, out, len(out), limit, offset)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.GetJob(c.Context(), viewerFromLocals(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) ChangeStatus(c fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateJobStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	p, err := h.uc.ChangeJobStatus(c.Context(), viewerFromLocals(c), id, job.Status(strings.ToLower(strings.TrimSpace(req.Status))))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
