package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/matching"
	"agri-match/internal/domain/profile"
	"agri-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCoverLetterLength = 5000

type CreateApplicationInput struct {
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter *string
}

type UpdateApplicationStatusInput struct {
	ApplicationID uuid.UUID
	ActorID       uuid.UUID
	Viewer        matching.Viewer
	Status        application.Status
}

type ApplicationUsecase interface {
	CreateApplication(ctx context.Context, in CreateApplicationInput) (application.Application, error)
	UpdateApplicationStatus(ctx context.Context, in UpdateApplicationStatusInput) (application.Application, error)
}

type ApplicationOptions struct {
	Profiles               repository.ProfileRepository
	Jobs                   repository.JobRepository
	Applications           repository.ApplicationRepository
	RequireVerifiedToApply bool
	StoreTimeout           time.Duration
	Logger                 *zap.Logger
	Now                    func() time.Time
	NewID                  func() uuid.UUID
	// Scorer defaults to matching.Score.
	Scorer func(profile.CandidateProfile, job.Posting) int
}

type Applications struct {
	profiles        repository.ProfileRepository
	jobs            repository.JobRepository
	applications    repository.ApplicationRepository
	requireVerified bool
	timeout         time.Duration
	logger          *zap.Logger
	now             func() time.Time
	newID           func() uuid.UUID
	score           func(profile.CandidateProfile, job.Posting) int
}

func NewApplicationUsecase(opts ApplicationOptions) *Applications {
	u := &Applications{
		profiles:        opts.Profiles,
		jobs:            opts.Jobs,
		applications:    opts.Applications,
		requireVerified: opts.RequireVerifiedToApply,
		timeout:         opts.StoreTimeout,
		logger:          opts.Logger,
		now:             opts.Now,
		newID:           opts.NewID,
		score:           opts.Scorer,
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	u.logger = u.logger.Named("applications")
	if u.now == nil {
		u.now = time.Now
	}
	if u.newID == nil {
		u.newID = uuid.New
	}
	if u.score == nil {
		u.score = matching.Score
	}
	return u
}

// CreateApplication records a candidate's application and freezes the match
// score computed from the profile and posting as they stand right now.
func (u *Applications) CreateApplication(ctx context.Context, in CreateApplicationInput) (application.Application, error) {
	if in.ApplicantID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}
	if in.JobID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}
	coverLetter, err := normalizeCoverLetter(in.CoverLetter)
	if err != nil {
		return application.Application{}, err
	}

	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	posting, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		return application.Application{}, storeError(err)
	}
	candidate, err := u.profiles.GetByID(ctx, in.ApplicantID)
	if err != nil {
		return application.Application{}, storeError(err)
	}
	if !candidate.CanBeCandidate() {
		return application.Application{}, ErrNotCandidate
	}
	if posting.Status != job.StatusActive {
		return application.Application{}, ErrJobNotApplicable
	}
	if u.requireVerified && !candidate.IsVerified {
		return application.Application{}, ErrProfileNotVerified
	}

	exists, err := u.applications.Exists(ctx, in.JobID, in.ApplicantID)
	if err != nil {
		return application.Application{}, storeError(err)
	}
	if exists {
		return application.Application{}, ErrDuplicateApplication
	}

	score := u.score(candidate, posting)
	if !matching.ValidScore(score) {
		u.logger.Error("match score out of range",
			zap.Int("score", score),
			zap.String("job_id", in.JobID.String()),
			zap.String("applicant_id", in.ApplicantID.String()),
		)
		return application.Application{}, ErrInvariantViolation
	}

	if err := ctx.Err(); err != nil {
		return application.Application{}, storeError(err)
	}

	now := u.now().UTC()
	created, err := u.applications.Insert(ctx, application.Application{
		ID:          u.newID(),
		JobID:       in.JobID,
		ApplicantID: in.ApplicantID,
		MatchScore:  score,
		Status:      application.StatusPending,
		CoverLetter: coverLetter,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return application.Application{}, ErrDuplicateApplication
		}
		return application.Application{}, storeError(err)
	}

	u.logger.Info("application recorded",
		zap.String("application_id", created.ID.String()),
		zap.String("job_id", created.JobID.String()),
		zap.Int("match_score", created.MatchScore),
	)
	return created, nil
}

// UpdateApplicationStatus moves an application through its lifecycle. The
// applicant may only withdraw; every other move belongs to the job's owner
// or an admin. The match score is never touched.
func (u *Applications) UpdateApplicationStatus(ctx context.Context, in UpdateApplicationStatusInput) (application.Application, error) {
	if in.ApplicationID == uuid.Nil || !in.Status.Valid() {
		return application.Application{}, ErrInvalidInput
	}

	ctx, cancel := withStoreTimeout(ctx, u.timeout)
	defer cancel()

	app, err := u.applications.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return application.Application{}, storeError(err)
	}

	if in.Status == application.StatusWithdrawn {
		if in.ActorID == uuid.Nil || in.ActorID != app.ApplicantID {
			return application.Application{}, ErrForbidden
		}
	} else {
		posting, err := u.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return application.Application{}, storeError(err)
		}
		if !in.Viewer.CanManage(posting) {
			return application.Application{}, ErrForbidden
		}
	}

	if err := app.Transition(in.Status, u.now()); err != nil {
		return application.Application{}, ErrInvalidTransition
	}
	if err := u.applications.UpdateStatus(ctx, app.ID, app.Status, app.UpdatedAt); err != nil {
		return application.Application{}, storeError(err)
	}
	return app, nil
}

func normalizeCoverLetter(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > maxCoverLetterLength {
		return nil, ErrInvalidInput
	}
	return &v, nil
}
