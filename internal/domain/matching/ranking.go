package matching

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MinJobScore is the hard cutoff for jobs shown to a candidate.
const MinJobScore = 30

type RankedCandidate struct {
	ApplicationID uuid.UUID
	ApplicantID   uuid.UUID
	MatchScore    int
	AppliedAt     time.Time
}

// SortCandidates orders applicants by score descending, then earliest
// application first. SelectJobs uses the opposite time direction; keep both.
// ApplicationID makes the order total.
func SortCandidates(items []RankedCandidate) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if !a.AppliedAt.Equal(b.AppliedAt) {
			return a.AppliedAt.Before(b.AppliedAt)
		}
		return bytes.Compare(a.ApplicationID[:], b.ApplicationID[:]) < 0
	})
}

type ScoredJob struct {
	JobID      uuid.UUID
	MatchScore int
	CreatedAt  time.Time
}

// SelectJobs drops postings under MinJobScore and orders the rest by score
// descending, then newest posting first. See SortCandidates for the reverse
// rule.
func SelectJobs(items []ScoredJob) []ScoredJob {
	out := make([]ScoredJob, 0, len(items))
	for _, it := range items {
		if it.MatchScore < MinJobScore {
			continue
		}
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.JobID[:], b.JobID[:]) < 0
	})
	return out
}
