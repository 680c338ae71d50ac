package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	JobID       string  `json:"job_id"`
	CoverLetter *string `json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	MatchScore  int       `json:"match_score"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"cover_letter"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
