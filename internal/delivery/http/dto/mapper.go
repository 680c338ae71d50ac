package dto

import (
	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/profile"
)

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func NewPublicProfileResponse(p profile.PublicProfile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:              p.ID,
		FullName:        p.FullName,
		Role:            string(p.Role),
		PreferredRegion: stringPtr(p.PreferredRegion),
		Specialization:  stringPtr(p.Specialization),
		InstitutionType: stringPtr(p.InstitutionType),
		Qualification:   p.Qualification,
		IsVerified:      p.IsVerified,
	}
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:                      p.ID,
		OwnerID:                 p.OwnerID,
		Title:                   p.Title,
		Location:                p.Location,
		JobType:                 string(p.JobType),
		RequiredSpecialization:  stringPtr(p.RequiredSpecialization),
		RequiredInstitutionType: stringPtr(p.RequiredInstitutionType),
		Status:                  string(p.Status),
		StatusChangedAt:         p.StatusChangedAt,
		CreatedAt:               p.CreatedAt,
	}
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		MatchScore:  a.MatchScore,
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
