package repository

import (
	"context"
	"time"

	"agri-match/internal/database"
	"agri-match/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListForJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	Insert(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, updatedAt time.Time) error
}

const applicationColumns = `id, job_id, applicant_id, match_score, status, cover_letter, created_at, updated_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Exists ignores withdrawn applications, matching the partial unique index.
func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2 AND status <> 'withdrawn')`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListForJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE job_id = $1 AND status <> 'withdrawn'
		 ORDER BY match_score DESC, created_at ASC, id`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert writes the whole row, score included, in a single statement.
func (r *PostgresApplicationRepository) Insert(ctx context.Context, a application.Application) (application.Application, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (`+applicationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID,
		a.JobID,
		a.ApplicantID,
		a.MatchScore,
		string(a.Status),
		a.CoverLetter,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, mapWriteError(err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// UpdateStatus never touches match_score.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, updatedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), updatedAt.UTC(), id,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.MatchScore, &status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
