package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agri-match/internal/database"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
)

type JobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListActive(ctx context.Context) ([]job.Posting, error)
	List(ctx context.Context, f JobListFilter) ([]job.Posting, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status, changedAt time.Time) error
}

// JobListFilter narrows a listing in SQL; visibility is decided afterwards.
// An empty Statuses slice means every status.
type JobListFilter struct {
	Statuses []job.Status
	OwnerID  *uuid.UUID
	Limit    int
	Offset   int
}

const jobColumns = `id, owner_id, title, location, job_type, required_specialization, required_institution_type, status, status_changed_at, created_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Posting, error) {
	return r.List(ctx, JobListFilter{Statuses: []job.Status{job.StatusActive}})
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]job.Posting, error) {
	query, args := buildJobListQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildJobListQuery(f JobListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d::text[])", len(args)))
	}
	if f.OwnerID != nil {
		args = append(args, *f.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + jobColumns + ` FROM job_postings`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status, changedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_postings SET status = $1, status_changed_at = $2 WHERE id = $3`,
		string(status), changedAt.UTC(), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPosting(row database.Row) (job.Posting, error) {
	var (
		p                 job.Posting
		jobType, status   string
		spec, institution *string
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Location, &jobType, &spec, &institution, &status, &p.StatusChangedAt, &p.CreatedAt); err != nil {
		return job.Posting{}, err
	}

	p.JobType = job.Type(jobType)
	p.Status = job.Status(status)
	if spec != nil {
		v := profile.Specialization(*spec)
		p.RequiredSpecialization = &v
	}
	if institution != nil {
		v := job.RequiredInstitution(*institution)
		p.RequiredInstitutionType = &v
	}
	return p, nil
}
