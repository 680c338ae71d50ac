package handler

import (
	"strings"

	"agri-match/internal/delivery/http/dto"
	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/pkg/response"
	"agri-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.RankingUsecase
}

func NewMatchHandler(uc usecase.RankingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

// GetMatches ranks applicants when job_id is given, otherwise it ranks
// active jobs for the calling candidate.
func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
		}
		return h.candidatesForJob(c, jobID)
	}

	items, err := h.uc.RankJobsForCandidate(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.JobMatchResponse{
			Job:        dto.NewJobResponse(it.Job),
			MatchScore: it.MatchScore,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) candidatesForJob(c fiber.Ctx, jobID uuid.UUID) error {
	items, err := h.uc.RankCandidatesForJob(c.Context(), viewerFromLocals(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.CandidateMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CandidateMatchResponse{
			ApplicationID: it.ApplicationID,
			Applicant:     dto.NewPublicProfileResponse(it.Applicant),
			MatchScore:    it.MatchScore,
			Status:        string(it.Status),
			AppliedAt:     it.AppliedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
