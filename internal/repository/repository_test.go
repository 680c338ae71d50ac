package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"agri-match/internal/domain/application"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestApplicationRepository_InsertUniqueViolation(t *testing.T) {
	db := &fakeDB{execErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "applications_job_applicant_live_key"}}
	repo := NewPostgresApplicationRepository(db)

	_, err := repo.Insert(context.Background(), application.Application{ID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Contains(t, err.Error(), "applications_job_applicant_live_key")
}

func TestApplicationRepository_InsertPassesOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewPostgresApplicationRepository(&fakeDB{execErr: boom})

	_, err := repo.Insert(context.Background(), application.Application{ID: uuid.New()})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConstraintViolation)
}

func TestApplicationRepository_InsertWritesScore(t *testing.T) {
	db := &fakeDB{execAffected: 1}
	repo := NewPostgresApplicationRepository(db)
	a := application.Application{ID: uuid.New(), JobID: uuid.New(), ApplicantID: uuid.New(), MatchScore: 85, Status: application.StatusPending}

	got, err := repo.Insert(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	require.Len(t, db.calls, 1)
	assert.Equal(t, 85, db.calls[0].args[3])
	assert.Equal(t, "pending", db.calls[0].args[4])
}

func TestApplicationRepository_GetByIDNotFound(t *testing.T) {
	repo := NewPostgresApplicationRepository(&fakeDB{rowErr: pgx.ErrNoRows})
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepository_UpdateStatusMissing(t *testing.T) {
	repo := NewPostgresApplicationRepository(&fakeDB{execAffected: 0})
	err := repo.UpdateStatus(context.Background(), uuid.New(), application.StatusRejected, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepository_ListForJob(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()
	jobID := uuid.New()
	db := &fakeDB{rows: [][]any{
		{id, jobID, uuid.New(), 70, "reviewing", strPtr("hello"), now, now},
	}}
	repo := NewPostgresApplicationRepository(db)

	items, err := repo.ListForJob(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, application.StatusReviewing, items[0].Status)
	require.NotNil(t, items[0].CoverLetter)
	assert.Contains(t, db.calls[0].query, "status <> 'withdrawn'")
}

func TestJobRepository_GetByIDMapsNullable(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()
	db := &fakeDB{rows: [][]any{
		{id, uuid.New(), "Poultry hand", "Ashanti", "farm_hand", strPtr("livestock"), strPtr("any"), "active", (*time.Time)(nil), now},
	}}
	repo := NewPostgresJobRepository(db)

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, job.StatusActive, p.Status)
	assert.Equal(t, job.TypeFarmHand, p.JobType)
	require.NotNil(t, p.RequiredSpecialization)
	assert.Equal(t, profile.SpecializationLivestock, *p.RequiredSpecialization)
	require.NotNil(t, p.RequiredInstitutionType)
	assert.Equal(t, job.RequireAnyInstitution, *p.RequiredInstitutionType)
	assert.Nil(t, p.StatusChangedAt)
}

func TestJobRepository_GetByIDNotFound(t *testing.T) {
	repo := NewPostgresJobRepository(&fakeDB{rowErr: pgx.ErrNoRows})
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildJobListQuery(t *testing.T) {
	owner := uuid.New()
	q, args := buildJobListQuery(JobListFilter{
		Statuses: []job.Status{job.StatusActive, job.StatusInactive},
		OwnerID:  &owner,
		Limit:    20,
		Offset:   40,
	})
	assert.Contains(t, q, "status = ANY($1::text[])")
	assert.Contains(t, q, "owner_id = $2")
	assert.Contains(t, q, "LIMIT $3")
	assert.Contains(t, q, "OFFSET $4")
	require.Len(t, args, 4)
	assert.Equal(t, []string{"active", "inactive"}, args[0])

	q, args = buildJobListQuery(JobListFilter{})
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)
}

func TestProfileRepository_ListByIDs(t *testing.T) {
	now := time.Now().UTC()
	a, b := uuid.New(), uuid.New()
	db := &fakeDB{rows: [][]any{
		{a, "graduate", "Ama Owusu", strPtr("Ashanti"), strPtr("crop"), strPtr("university"), strPtr("BSc Agriculture"), true, now, now},
		{b, "student", "Kofi Mensah", nil, nil, nil, nil, false, now, now},
	}}
	repo := NewPostgresProfileRepository(db)

	got, err := repo.ListByIDs(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[a].PreferredRegion)
	assert.Equal(t, profile.RegionAshanti, *got[a].PreferredRegion)
	assert.Nil(t, got[b].PreferredRegion)
	assert.Equal(t, []string{a.String(), b.String()}, db.calls[0].args[0])
}

func TestProfileRepository_ListByIDsEmpty(t *testing.T) {
	db := &fakeDB{}
	got, err := NewPostgresProfileRepository(db).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, db.calls)
}
