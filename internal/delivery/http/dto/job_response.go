package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                      uuid.UUID  `json:"id"`
	OwnerID                 uuid.UUID  `json:"owner_id"`
	Title                   string     `json:"title"`
	Location                string     `json:"location"`
	JobType                 string     `json:"job_type"`
	RequiredSpecialization  *string    `json:"required_specialization"`
	RequiredInstitutionType *string    `json:"required_institution_type"`
	Status                  string     `json:"status"`
	StatusChangedAt         *time.Time `json:"status_changed_at"`
	CreatedAt               time.Time  `json:"created_at"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}
