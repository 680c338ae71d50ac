package dto

import (
	"time"

	"github.com/google/uuid"
)

// CandidateMatchResponse is one applicant in a farm's ranking. The score is
// the one frozen on the application.
type CandidateMatchResponse struct {
	ApplicationID uuid.UUID             `json:"application_id"`
	Applicant     PublicProfileResponse `json:"applicant"`
	MatchScore    int                   `json:"match_score"`
	Status        string                `json:"status"`
	AppliedAt     time.Time             `json:"applied_at"`
}

type PublicProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Role            string    `json:"role"`
	PreferredRegion *string   `json:"preferred_region"`
	Specialization  *string   `json:"specialization"`
	InstitutionType *string   `json:"institution_type"`
	Qualification   *string   `json:"qualification"`
	IsVerified      bool      `json:"is_verified"`
}

// JobMatchResponse is one posting in a candidate's ranking with its fresh score.
type JobMatchResponse struct {
	Job        JobResponse `json:"job"`
	MatchScore int         `json:"match_score"`
}
