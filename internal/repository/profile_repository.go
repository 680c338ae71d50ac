package repository

import (
	"context"

	"agri-match/internal/database"
	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.CandidateProfile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.CandidateProfile, error)
}

const profileColumns = `id, role, full_name, preferred_region, specialization, institution_type, qualification, is_verified, created_at, updated_at`

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.CandidateProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return profile.CandidateProfile{}, ErrNotFound
		}
		return profile.CandidateProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.CandidateProfile, error) {
	out := make(map[uuid.UUID]profile.CandidateProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1::uuid[])`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (profile.CandidateProfile, error) {
	var (
		p                      profile.CandidateProfile
		role                   string
		region, spec, inst, ql *string
	)
	if err := row.Scan(&p.ID, &role, &p.FullName, &region, &spec, &inst, &ql, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profile.CandidateProfile{}, err
	}

	p.Role = profile.Role(role)
	if region != nil {
		v := profile.Region(*region)
		p.PreferredRegion = &v
	}
	if spec != nil {
		v := profile.Specialization(*spec)
		p.Specialization = &v
	}
	if inst != nil {
		v := profile.InstitutionType(*inst)
		p.InstitutionType = &v
	}
	p.Qualification = ql
	return p, nil
}
