package usecase

import (
	"context"
	"time"

	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/matching"
	"agri-match/internal/domain/profile"
	"agri-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CandidateMatch is one applicant in a job's ranking, carrying the score
// persisted when they applied.
type CandidateMatch struct {
	ApplicationID uuid.UUID
	Applicant     profile.PublicProfile
	MatchScore    int
	Status        application.Status
	AppliedAt     time.Time
}

// JobMatch is one posting in a candidate's ranking with a freshly computed score.
type JobMatch struct {
	Job        job.Posting
	MatchScore int
}

type RankingUsecase interface {
	RankCandidatesForJob(ctx context.Context, viewer matching.Viewer, jobID uuid.UUID) ([]CandidateMatch, error)
	RankJobsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]JobMatch, error)
}

type RankingOptions struct {
	Profiles     repository.ProfileRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Cache        RankingCache
	CacheTTL     time.Duration
	StoreTimeout time.Duration
	Logger       *zap.Logger
}

type Ranking struct {
	profiles     repository.ProfileRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	cache        RankingCache
	cacheTTL     time.Duration
	timeout      time.Duration
	logger       *zap.Logger
}

func NewRankingUsecase(opts RankingOptions) *Ranking {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranking{
		profiles:     opts.Profiles,
		jobs:         opts.Jobs,
		applications: opts.Applications,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		timeout:      opts.StoreTimeout,
		logger:       logger.Named("ranking"),
	}
}

func (u *Ranking) RankCandidatesForJob(ctx context.Context, viewer matching.Viewer, jobID uuid.UUID) ([]CandidateMatch, error) {
	if jobID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError(err)
	}
	if !viewer.CanManage(posting) {
		return nil, ErrForbidden
	}

	apps, err := u.applications.ListForJob(ctx, jobID)
	if err != nil {
		return nil, storeError(err)
	}

	ranked := make([]matching.RankedCandidate, 0, len(apps))
	byID := make(map[uuid.UUID]application.Application, len(apps))
	applicantIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		if a.Status == application.StatusWithdrawn {
			continue
		}
		ranked = append(ranked, matching.RankedCandidate{
			ApplicationID: a.ID,
			ApplicantID:   a.ApplicantID,
			MatchScore:    a.MatchScore,
			AppliedAt:     a.CreatedAt,
		})
		byID[a.ID] = a
		applicantIDs = append(applicantIDs, a.ApplicantID)
	}
	matching.SortCandidates(ranked)

	profiles, err := u.profiles.ListByIDs(ctx, applicantIDs)
	if err != nil {
		return nil, storeError(err)
	}

	out := make([]CandidateMatch, 0, len(ranked))
	for _, rc := range ranked {
		p, ok := profiles[rc.ApplicantID]
		if !ok {
			u.logger.Warn("applicant profile missing", zap.String("job_id", jobID.String()), zap.String("applicant_id", rc.ApplicantID.String()))
			p = profile.CandidateProfile{ID: rc.ApplicantID}
		}
		out = append(out, CandidateMatch{
			ApplicationID: rc.ApplicationID,
			Applicant:     p.Public(),
			MatchScore:    rc.MatchScore,
			Status:        byID[rc.ApplicationID].Status,
			AppliedAt:     rc.AppliedAt,
		})
	}
	return out, nil
}

func (u *Ranking) RankJobsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]JobMatch, error) {
	if candidateID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	cacheKey := CandidateRankingCacheKey(candidateID)
	if u.cache != nil {
		var cached []JobMatch
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("ranking cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	storeCtx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	var (
		candidate profile.CandidateProfile
		pool      []job.Posting
	)
	g, gctx := errgroup.WithContext(storeCtx)
	g.Go(func() error {
		var err error
		candidate, err = u.profiles.GetByID(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = u.jobs.ListActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeError(err)
	}

	if !candidate.CanBeCandidate() {
		return nil, ErrNotCandidate
	}

	scored := make([]matching.ScoredJob, 0, len(pool))
	byID := make(map[uuid.UUID]job.Posting, len(pool))
	for _, p := range pool {
		if p.Status != job.StatusActive {
			continue
		}
		scored = append(scored, matching.ScoredJob{
			JobID:      p.ID,
			MatchScore: matching.Score(candidate, p),
			CreatedAt:  p.CreatedAt,
		})
		byID[p.ID] = p
	}

	selected := matching.SelectJobs(scored)
	out := make([]JobMatch, 0, len(selected))
	for _, s := range selected {
		out = append(out, JobMatch{Job: byID[s.JobID], MatchScore: s.MatchScore})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.cacheTTL); err != nil {
			u.logger.Warn("ranking cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return out, nil
}

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
