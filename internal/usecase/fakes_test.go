package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/profile"
	"agri-match/internal/repository"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	mu   sync.Mutex
	byID map[uuid.UUID]profile.CandidateProfile
	err  error
}

func newFakeProfiles(ps ...profile.CandidateProfile) *fakeProfiles {
	f := &fakeProfiles{byID: map[uuid.UUID]profile.CandidateProfile{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) put(p profile.CandidateProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
}

func (f *fakeProfiles) GetByID(ctx context.Context, id uuid.UUID) (profile.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return profile.CandidateProfile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return profile.CandidateProfile{}, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return profile.CandidateProfile{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]profile.CandidateProfile, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeJobs struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]job.Posting
	order   []uuid.UUID
	err     error
	updates int
	lastF   repository.JobListFilter
}

func newFakeJobs(ps ...job.Posting) *fakeJobs {
	f := &fakeJobs{byID: map[uuid.UUID]job.Posting{}}
	for _, p := range ps {
		f.byID[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeJobs) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if err := ctx.Err(); err != nil {
		return job.Posting{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return job.Posting{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeJobs) ListActive(ctx context.Context) ([]job.Posting, error) {
	return f.List(ctx, repository.JobListFilter{Statuses: []job.Status{job.StatusActive}})
}

func (f *fakeJobs) List(ctx context.Context, lf repository.JobListFilter) ([]job.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastF = lf
	if f.err != nil {
		return nil, f.err
	}
	var out []job.Posting
	for _, id := range f.order {
		p := f.byID[id]
		if lf.OwnerID != nil && p.OwnerID != *lf.OwnerID {
			continue
		}
		if len(lf.Statuses) > 0 && !containsStatus(lf.Statuses, p.Status) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func containsStatus(ss []job.Status, s job.Status) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (f *fakeJobs) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status, changedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	p.StatusChangedAt = &changedAt
	f.byID[id] = p
	f.updates++
	return nil
}

// fakeApplications enforces the live (job, applicant) uniqueness the way the
// partial index does in Postgres.
type fakeApplications struct {
	mu        sync.Mutex
	rows      []application.Application
	existsErr error
	insertErr error
	listErr   error
	inserts   int
}

func (f *fakeApplications) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.liveLocked(jobID, applicantID), nil
}

func (f *fakeApplications) liveLocked(jobID, applicantID uuid.UUID) bool {
	for _, a := range f.rows {
		if a.JobID == jobID && a.ApplicantID == applicantID && a.Status != application.StatusWithdrawn {
			return true
		}
	}
	return false
}

func (f *fakeApplications) ListForJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []application.Application
	for _, a := range f.rows {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) Insert(ctx context.Context, a application.Application) (application.Application, error) {
	if err := ctx.Err(); err != nil {
		return application.Application{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return application.Application{}, f.insertErr
	}
	if f.liveLocked(a.JobID, a.ApplicantID) {
		return application.Application{}, repository.ErrConstraintViolation
	}
	f.rows = append(f.rows, a)
	f.inserts++
	return a, nil
}

func (f *fakeApplications) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrNotFound
}

func (f *fakeApplications) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			f.rows[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	getErr   error
	sets     int
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func candidateProfile(region profile.Region, verified bool) profile.CandidateProfile {
	return profile.CandidateProfile{
		ID:              uuid.New(),
		Role:            profile.RoleGraduate,
		FullName:        "Ama Mensah",
		PreferredRegion: ptr(region),
		Specialization:  ptr(profile.SpecializationCrop),
		IsVerified:      verified,
	}
}

func activeJob(region profile.Region, createdAt time.Time) job.Posting {
	return job.Posting{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Farm hand",
		Location:  string(region),
		JobType:   job.TypeFarmHand,
		Status:    job.StatusActive,
		CreatedAt: createdAt,
	}
}
