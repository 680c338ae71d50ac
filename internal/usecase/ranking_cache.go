package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RankingCache stores ranked-job results. Rankings tolerate eventual
// consistency, so a miss or a cache error only costs a recomputation.
type RankingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const candidateRankingPrefix = "matches:candidate:"

func CandidateRankingCacheKey(candidateID uuid.UUID) string {
	return candidateRankingPrefix + candidateID.String()
}

func CandidateRankingCachePattern() string {
	return candidateRankingPrefix + "*"
}
