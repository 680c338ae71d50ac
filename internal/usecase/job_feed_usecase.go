package usecase

import (
	"context"
	"time"

	"agri-match/internal/domain/job"
	"agri-match/internal/domain/matching"
	"agri-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultJobPageSize = 20
	maxJobPageSize     = 100
)

type ListJobsParams struct {
	Viewer matching.Viewer
	Limit  int
	Offset int
}

type JobFeedUsecase interface {
	ListJobs(ctx context.Context, params ListJobsParams) ([]job.Posting, error)
	GetJob(ctx context.Context, viewer matching.Viewer, id uuid.UUID) (job.Posting, error)
	ChangeJobStatus(ctx context.Context, viewer matching.Viewer, id uuid.UUID, next job.Status) (job.Posting, error)
}

type JobFeedOptions struct {
	Jobs         repository.JobRepository
	Cache        RankingCache
	StoreTimeout time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
}

type JobFeed struct {
	jobs    repository.JobRepository
	cache   RankingCache
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewJobFeedUsecase(opts JobFeedOptions) *JobFeed {
	u := &JobFeed{
		jobs:    opts.Jobs,
		cache:   opts.Cache,
		timeout: opts.StoreTimeout,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	u.logger = u.logger.Named("jobs")
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

// ListJobs returns the postings visible to the viewer, newest first. An owner
// lists only their own postings. Paging is applied after visibility so a page
// is never short because of hidden rows.
func (u *JobFeed) ListJobs(ctx context.Context, params ListJobsParams) ([]job.Posting, error) {
	viewer := params.Viewer
	filter, err := parseStatusFilter(viewer.StatusFilter)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJobPageSize
	}
	if limit > maxJobPageSize {
		limit = maxJobPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	f := repository.JobListFilter{}
	switch {
	case viewer.Kind == matching.ViewerOwner:
		owner := viewer.FarmID
		f.OwnerID = &owner
		if filter != "" {
			f.Statuses = []job.Status{filter}
		}
	case filter != "":
		f.Statuses = []job.Status{filter}
	}

	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	rows, err := u.jobs.List(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}

	now := u.now()
	visible := make([]job.Posting, 0, len(rows))
	for _, p := range rows {
		if viewer.Kind == matching.ViewerOwner {
			if filter != "" && p.Status != filter {
				continue
			}
			visible = append(visible, p)
			continue
		}
		if matching.IsVisible(p, viewer, now) {
			visible = append(visible, p)
		}
	}

	if offset >= len(visible) {
		return []job.Posting{}, nil
	}
	end := offset + limit
	if end > len(visible) {
		end = len(visible)
	}
	return visible[offset:end], nil
}

// GetJob resolves a single posting. A posting the viewer may not see is
// reported as not found.
func (u *JobFeed) GetJob(ctx context.Context, viewer matching.Viewer, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrInvalidInput
	}
	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, storeError(err)
	}
	if !matching.IsVisible(p, viewer.WithStatus(matching.StatusAll), u.now()) {
		return job.Posting{}, ErrNotFound
	}
	return p, nil
}

// ChangeJobStatus moves a posting to next and stamps status_changed_at.
// Cached candidate rankings are dropped since the active pool changed.
func (u *JobFeed) ChangeJobStatus(ctx context.Context, viewer matching.Viewer, id uuid.UUID, next job.Status) (job.Posting, error) {
	if id == uuid.Nil || !next.Valid() {
		return job.Posting{}, ErrInvalidInput
	}
	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, storeError(err)
	}
	if !viewer.CanManage(p) {
		return job.Posting{}, ErrForbidden
	}
	if p.Status == next {
		return p, nil
	}

	if err := p.Transition(next, u.now()); err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	if err := u.jobs.UpdateStatus(ctx, p.ID, p.Status, *p.StatusChangedAt); err != nil {
		return job.Posting{}, storeError(err)
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, CandidateRankingCachePattern()); err != nil {
			u.logger.Warn("ranking cache invalidation failed", zap.Error(err))
		}
	}
	u.logger.Info("job status changed",
		zap.String("job_id", p.ID.String()),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

func parseStatusFilter(raw string) (job.Status, error) {
	if raw == "" || raw == matching.StatusAll {
		return "", nil
	}
	s := job.Status(raw)
	if !s.Valid() {
		return "", ErrInvalidInput
	}
	return s, nil
}
