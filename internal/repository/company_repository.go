package repository

import (
	"context"
	"errors"

	"talentlink/internal/database"
	"talentlink/internal/domain/company"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/student"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	// ListByPreferences filters companies by the student's declared
	// industry/location/size preferences; empty preference lists do not
	// restrict. A non-empty scope keeps only companies with at least one
	// open posting of that kind.
	ListByPreferences(ctx context.Context, prefs student.Preferences, scope posting.Kind, limit int) ([]company.Company, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]company.Company, error)
	ListActive(ctx context.Context, limit int) ([]company.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, industry, size, location, skills, created_at`

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) ListByPreferences(ctx context.Context, prefs student.Preferences, scope posting.Kind, limit int) ([]company.Company, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies c
		 WHERE (cardinality($1::text[]) = 0 OR c.industry = ANY($1::text[]))
		   AND (cardinality($2::text[]) = 0 OR c.location = ANY($2::text[]))
		   AND (cardinality($3::text[]) = 0 OR c.size = ANY($3::text[]))
		   AND ($4 = '' OR EXISTS (
				SELECT 1 FROM postings p
				WHERE p.company_id = c.id
				  AND p.kind = $4
				  AND p.active
				  AND (p.expires_at IS NULL OR p.expires_at > now())
		   ))
		 ORDER BY c.created_at, c.id
		 LIMIT $5`,
		emptyIfNil(prefs.Industries),
		emptyIfNil(prefs.Locations),
		emptyIfNil(prefs.CompanySizes),
		string(scope),
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func (r *PostgresCompanyRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]company.Company, error) {
	if len(ids) == 0 {
		return []company.Company{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies
		 WHERE id = ANY($1::uuid[])
		 ORDER BY created_at, id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func (r *PostgresCompanyRepository) ListActive(ctx context.Context, limit int) ([]company.Company, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies
		 ORDER BY created_at, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func collectCompanies(rows database.Rows) ([]company.Company, error) {
	defer rows.Close()
	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCompany(row scanner) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Industry, &c.Size, &c.Location, &c.Skills, &c.CreatedAt)
	if err != nil {
		return company.Company{}, err
	}
	return c, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var _ CompanyRepository = (*PostgresCompanyRepository)(nil)
