package matching

import (
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/profile"
)

// Point weights. The scale tops out at 95 and the 30-point job threshold
// was set against it, so any change here is a product decision.
const (
	RegionPoints         = 50
	VerifiedPoints       = 20
	SpecializationPoints = 15
	InstitutionPoints    = 10

	MaxScore = 100
)

// Breakdown is the points each rule contributed to a score.
type Breakdown struct {
	Region         int
	Verified       int
	Specialization int
	Institution    int
	Total          int
}

// Score returns the compatibility of candidate with posting in [0,100].
func Score(c profile.CandidateProfile, p job.Posting) int {
	return Explain(c, p).Total
}

// Explain returns each rule's contribution alongside the clamped total.
// Unset fields on either side simply fail their rule.
func Explain(c profile.CandidateProfile, p job.Posting) Breakdown {
	var b Breakdown

	if c.PreferredRegion != nil && p.Location != "" && string(*c.PreferredRegion) == p.Location {
		b.Region = RegionPoints
	}
	if c.IsVerified {
		b.Verified = VerifiedPoints
	}
	if p.RequiredSpecialization != nil && c.Specialization != nil && *p.RequiredSpecialization == *c.Specialization {
		b.Specialization = SpecializationPoints
	}
	if institutionMatches(c.InstitutionType, p.RequiredInstitutionType) {
		b.Institution = InstitutionPoints
	}

	sum := b.Region + b.Verified + b.Specialization + b.Institution
	if sum > MaxScore {
		sum = MaxScore
	}
	b.Total = sum
	return b
}

func institutionMatches(have *profile.InstitutionType, want *job.RequiredInstitution) bool {
	if want == nil {
		return false
	}
	if *want == job.RequireAnyInstitution {
		return true
	}
	if have == nil {
		return false
	}
	return string(*have) == string(*want)
}

// ValidScore reports whether s is on the 0..100 scale.
func ValidScore(s int) bool {
	return s >= 0 && s <= MaxScore
}
