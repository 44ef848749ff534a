package repository

import (
	"context"
	"errors"
	"strings"

	"talentlink/internal/database"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/student"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StudentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (student.Student, error)
	// ListByPostingRequirements selects students with any skill overlap
	// with the posting, matching education field and location when the
	// posting declares them, and at least the required experience.
	ListByPostingRequirements(ctx context.Context, p posting.Posting, limit int) ([]student.Student, error)
	ListByIndustryPreference(ctx context.Context, industry string, limit int) ([]student.Student, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]student.Student, error)
	ListActive(ctx context.Context, limit int) ([]student.Student, error)
}

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

const studentColumns = `id, skills, education_field, experience_years, location, preferred_industries, preferred_locations, preferred_company_sizes, created_at`

func (r *PostgresStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}

func (r *PostgresStudentRepository) ListByPostingRequirements(ctx context.Context, p posting.Posting, limit int) ([]student.Student, error) {
	if limit <= 0 {
		limit = 100
	}

	skills := normalizeAll(p.RequiredSkills)
	education := ""
	if p.EducationField != nil {
		education = strings.TrimSpace(*p.EducationField)
	}
	location := ""
	if p.Location != nil {
		location = strings.TrimSpace(*p.Location)
	}

	// Stored skills are lowered inside the query so the overlap check
	// agrees with the scorer's case-insensitive skill comparison.
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE (cardinality($1::text[]) = 0 OR EXISTS (
				SELECT 1 FROM unnest(skills) AS s WHERE lower(s) = ANY($1::text[])
		 ))
		   AND ($2 = '' OR education_field = $2)
		   AND experience_years >= $3
		   AND ($4 = '' OR location = $4)
		 ORDER BY created_at, id
		 LIMIT $5`,
		skills, education, p.MinExperienceYears, location, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *PostgresStudentRepository) ListByIndustryPreference(ctx context.Context, industry string, limit int) ([]student.Student, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE $1 = ANY(preferred_industries)
		 ORDER BY created_at, id
		 LIMIT $2`,
		strings.TrimSpace(industry), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *PostgresStudentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]student.Student, error) {
	if len(ids) == 0 {
		return []student.Student{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE id = ANY($1::uuid[])
		 ORDER BY created_at, id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *PostgresStudentRepository) ListActive(ctx context.Context, limit int) ([]student.Student, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 ORDER BY created_at, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func collectStudents(rows database.Rows) ([]student.Student, error) {
	defer rows.Close()
	out := make([]student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID,
		&s.Skills,
		&s.EducationField,
		&s.ExperienceYears,
		&s.Location,
		&s.Preferences.Industries,
		&s.Preferences.Locations,
		&s.Preferences.CompanySizes,
		&s.CreatedAt,
	)
	if err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

var _ StudentRepository = (*PostgresStudentRepository)(nil)
