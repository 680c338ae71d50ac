package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/matching"
	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type applicationFixture struct {
	profiles *fakeProfiles
	jobs     *fakeJobs
	apps     *fakeApplications
	uc       *Applications
}

func newApplicationFixture(requireVerified bool, ps []profile.CandidateProfile, js []job.Posting) *applicationFixture {
	f := &applicationFixture{
		profiles: newFakeProfiles(ps...),
		jobs:     newFakeJobs(js...),
		apps:     &fakeApplications{},
	}
	f.uc = NewApplicationUsecase(ApplicationOptions{
		Profiles:               f.profiles,
		Jobs:                   f.jobs,
		Applications:           f.apps,
		RequireVerifiedToApply: requireVerified,
		Now:                    fixedClock,
	})
	return f
}

func TestCreateApplication_PersistsScore(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	j.RequiredSpecialization = ptr(profile.SpecializationCrop)
	j.RequiredInstitutionType = ptr(job.RequireAnyInstitution)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})

	letter := "  I grew up on a cocoa farm.  "
	got, err := f.uc.CreateApplication(context.Background(), CreateApplicationInput{
		JobID:       j.ID,
		ApplicantID: c.ID,
		CoverLetter: &letter,
	})
	require.NoError(t, err)
	assert.Equal(t, 95, got.MatchScore)
	assert.Equal(t, application.StatusPending, got.Status)
	assert.Equal(t, testNow, got.CreatedAt)
	require.NotNil(t, got.CoverLetter)
	assert.Equal(t, "I grew up on a cocoa farm.", *got.CoverLetter)
	assert.Equal(t, 1, f.apps.inserts)
}

func TestCreateApplication_ScoreFrozenAfterProfileChange(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})

	created, err := f.uc.CreateApplication(context.Background(), CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
	require.NoError(t, err)
	require.Equal(t, 70, created.MatchScore)

	c.IsVerified = false
	c.PreferredRegion = ptr(profile.RegionVolta)
	f.profiles.put(c)

	ranking := NewRankingUsecase(RankingOptions{Profiles: f.profiles, Jobs: f.jobs, Applications: f.apps})
	ranked, err := ranking.RankCandidatesForJob(context.Background(), matching.OwnerViewer(j.OwnerID), j.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 70, ranked[0].MatchScore)
	assert.False(t, ranked[0].Applicant.IsVerified)
}

func TestCreateApplication_Rejections(t *testing.T) {
	verified := candidateProfile(profile.RegionAshanti, true)
	unverified := candidateProfile(profile.RegionAshanti, false)
	farm := candidateProfile(profile.RegionAshanti, true)
	farm.Role = profile.RoleFarm
	active := activeJob(profile.RegionAshanti, testNow)
	paused := activeJob(profile.RegionAshanti, testNow)
	paused.Status = job.StatusPaused

	tests := []struct {
		name string
		in   CreateApplicationInput
		want error
	}{
		{"unknown job", CreateApplicationInput{JobID: uuid.New(), ApplicantID: verified.ID}, ErrNotFound},
		{"unknown candidate", CreateApplicationInput{JobID: active.ID, ApplicantID: uuid.New()}, ErrNotFound},
		{"job not active", CreateApplicationInput{JobID: paused.ID, ApplicantID: verified.ID}, ErrJobNotApplicable},
		{"not verified", CreateApplicationInput{JobID: active.ID, ApplicantID: unverified.ID}, ErrProfileNotVerified},
		{"farm applicant", CreateApplicationInput{JobID: active.ID, ApplicantID: farm.ID}, ErrNotCandidate},
		{"anonymous", CreateApplicationInput{JobID: active.ID}, ErrUnauthorized},
		{"missing job id", CreateApplicationInput{ApplicantID: verified.ID}, ErrInvalidInput},
		{"cover letter too long", CreateApplicationInput{JobID: active.ID, ApplicantID: verified.ID, CoverLetter: ptr(strings.Repeat("a", maxCoverLetterLength+1))}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newApplicationFixture(true,
				[]profile.CandidateProfile{verified, unverified, farm},
				[]job.Posting{active, paused},
			)
			_, err := f.uc.CreateApplication(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.apps.inserts)
		})
	}
}

func TestCreateApplication_ScoreOutOfRange(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)

	for _, tt := range []struct {
		score   int
		wantErr error
	}{
		{-1, ErrInvariantViolation},
		{0, nil},
		{100, nil},
		{101, ErrInvariantViolation},
	} {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			apps := &fakeApplications{}
			uc := NewApplicationUsecase(ApplicationOptions{
				Profiles:     newFakeProfiles(c),
				Jobs:         newFakeJobs(j),
				Applications: apps,
				Logger:       zap.New(core),
				Now:          fixedClock,
				Scorer:       func(profile.CandidateProfile, job.Posting) int { return tt.score },
			})

			got, err := uc.CreateApplication(context.Background(), CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, apps.inserts)
				require.Equal(t, 1, logs.Len())
				entry := logs.All()[0]
				assert.Equal(t, "match score out of range", entry.Message)
				assert.Equal(t, int64(tt.score), entry.ContextMap()["score"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, got.MatchScore)
			assert.Equal(t, 1, apps.inserts)
			assert.Zero(t, logs.Len())
		})
	}
}

func TestCreateApplication_UnverifiedAllowedWhenPolicyOff(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, false)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})

	got, err := f.uc.CreateApplication(context.Background(), CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, 50, got.MatchScore)
}

func TestCreateApplication_Duplicate(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})
	in := CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID}

	_, err := f.uc.CreateApplication(context.Background(), in)
	require.NoError(t, err)
	_, err = f.uc.CreateApplication(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateApplication)
	assert.Equal(t, 1, f.apps.inserts)
}

func TestCreateApplication_ConcurrentDuplicate(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})
	in := CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID}

	const callers = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.CreateApplication(context.Background(), in)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateApplication):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, dup)
	assert.Equal(t, 1, f.apps.inserts)
}

func TestCreateApplication_ReapplyAfterWithdraw(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})
	in := CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID}

	first, err := f.uc.CreateApplication(context.Background(), in)
	require.NoError(t, err)
	_, err = f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{
		ApplicationID: first.ID,
		ActorID:       c.ID,
		Status:        application.StatusWithdrawn,
	})
	require.NoError(t, err)

	_, err = f.uc.CreateApplication(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, 2, f.apps.inserts)
}

func TestCreateApplication_StoreUnavailable(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})
	f.apps.insertErr = errors.New("connection reset by peer")

	_, err := f.uc.CreateApplication(context.Background(), CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicateApplication)
}

func TestCreateApplication_CanceledWritesNothing(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)
	f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.uc.CreateApplication(ctx, CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.apps.inserts)
}

func TestUpdateApplicationStatus(t *testing.T) {
	c := candidateProfile(profile.RegionAshanti, true)
	j := activeJob(profile.RegionAshanti, testNow)

	setup := func(t *testing.T) (*applicationFixture, application.Application) {
		f := newApplicationFixture(false, []profile.CandidateProfile{c}, []job.Posting{j})
		a, err := f.uc.CreateApplication(context.Background(), CreateApplicationInput{JobID: j.ID, ApplicantID: c.ID})
		require.NoError(t, err)
		return f, a
	}

	t.Run("owner shortlists", func(t *testing.T) {
		f, a := setup(t)
		got, err := f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{
			ApplicationID: a.ID,
			Viewer:        matching.OwnerViewer(j.OwnerID),
			Status:        application.StatusShortlisted,
		})
		require.NoError(t, err)
		assert.Equal(t, application.StatusShortlisted, got.Status)
		assert.Equal(t, a.MatchScore, got.MatchScore)
	})

	t.Run("other farm forbidden", func(t *testing.T) {
		f, a := setup(t)
		_, err := f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{
			ApplicationID: a.ID,
			Viewer:        matching.OwnerViewer(uuid.New()),
			Status:        application.StatusRejected,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("only applicant withdraws", func(t *testing.T) {
		f, a := setup(t)
		_, err := f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{
			ApplicationID: a.ID,
			ActorID:       j.OwnerID,
			Viewer:        matching.OwnerViewer(j.OwnerID),
			Status:        application.StatusWithdrawn,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("final state is terminal", func(t *testing.T) {
		f, a := setup(t)
		admin := matching.AdminViewer()
		_, err := f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{ApplicationID: a.ID, Viewer: admin, Status: application.StatusRejected})
		require.NoError(t, err)
		_, err = f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{ApplicationID: a.ID, Viewer: admin, Status: application.StatusAccepted})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		f, a := setup(t)
		_, err := f.uc.UpdateApplicationStatus(context.Background(), UpdateApplicationStatusInput{ApplicationID: a.ID, Viewer: matching.AdminViewer(), Status: "hired"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
