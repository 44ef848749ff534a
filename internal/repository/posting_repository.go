package repository

import (
	"context"
	"errors"

	"talentlink/internal/database"
	"talentlink/internal/domain/posting"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (posting.Posting, error)
}

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

func (r *PostgresPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, company_id, kind, required_skills, education_field, min_experience_years, location, active, expires_at
		 FROM postings WHERE id = $1`,
		id,
	)

	var p posting.Posting
	var kind string
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&kind,
		&p.RequiredSkills,
		&p.EducationField,
		&p.MinExperienceYears,
		&p.Location,
		&p.Active,
		&p.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posting.Posting{}, posting.ErrNotFound
		}
		return posting.Posting{}, err
	}
	p.Kind = posting.Kind(kind)
	return p, nil
}

var _ PostingRepository = (*PostgresPostingRepository)(nil)
