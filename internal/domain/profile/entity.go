package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFarm     Role = "farm"
	RoleGraduate Role = "graduate"
	RoleStudent  Role = "student"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarm, RoleGraduate, RoleStudent, RoleAdmin:
		return true
	default:
		return false
	}
}

type Specialization string

const (
	SpecializationCrop         Specialization = "crop"
	SpecializationLivestock    Specialization = "livestock"
	SpecializationAgribusiness Specialization = "agribusiness"
	SpecializationOther        Specialization = "other"
)

func (s Specialization) Valid() bool {
	switch s {
	case SpecializationCrop, SpecializationLivestock, SpecializationAgribusiness, SpecializationOther:
		return true
	default:
		return false
	}
}

type InstitutionType string

const (
	InstitutionUniversity      InstitutionType = "university"
	InstitutionTrainingCollege InstitutionType = "training_college"
)

type CandidateProfile struct {
	ID              uuid.UUID
	Role            Role
	FullName        string
	PreferredRegion *Region
	Specialization  *Specialization
	InstitutionType *InstitutionType
	Qualification   *string
	IsVerified      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanBeCandidate reports whether the profile may be matched against jobs.
// Farms own postings and are never ranked as applicants.
func (p CandidateProfile) CanBeCandidate() bool {
	return p.Role != RoleFarm
}

// PublicProfile is the subset of a profile a farm sees when reviewing applicants.
type PublicProfile struct {
	ID              uuid.UUID
	FullName        string
	Role            Role
	PreferredRegion *Region
	Specialization  *Specialization
	InstitutionType *InstitutionType
	Qualification   *string
	IsVerified      bool
}

func (p CandidateProfile) Public() PublicProfile {
	return PublicProfile{
		ID:              p.ID,
		FullName:        p.FullName,
		Role:            p.Role,
		PreferredRegion: p.PreferredRegion,
		Specialization:  p.Specialization,
		InstitutionType: p.InstitutionType,
		Qualification:   p.Qualification,
		IsVerified:      p.IsVerified,
	}
}
