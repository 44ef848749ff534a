package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"talentlink/internal/database"
	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict marks an upsert race that survived the single retry.
var ErrConflict = errors.New("concurrent match write conflict")

type MatchRepository interface {
	// UpsertScored writes one scored pair under the (student, company)
	// natural key. Existing rows keep their status and interaction
	// history; only score fields and updated_at change. Returns whether
	// the row was created.
	UpsertScored(ctx context.Context, studentID, companyID uuid.UUID, pair scoring.ScoredPair, meta map[string]any) (match.Match, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	FindByPair(ctx context.Context, studentID, companyID uuid.UUID) (match.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status match.Status, performedBy match.Actor, metadata map[string]any) (match.Match, error)
	ListViewedStudentIDs(ctx context.Context, companyID uuid.UUID, limit int) ([]uuid.UUID, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, student_id, company_id, match_score, match_components, match_type, ai_insights, status, interaction_history, created_at, updated_at`

func (r *PostgresMatchRepository) UpsertScored(ctx context.Context, studentID, companyID uuid.UUID, pair scoring.ScoredPair, meta map[string]any) (match.Match, bool, error) {
	m, created, err := r.upsertOnce(ctx, studentID, companyID, pair, meta)
	if err == nil {
		return m, created, nil
	}
	if !retryableWriteError(err) {
		return match.Match{}, false, err
	}

	m, created, err = r.upsertOnce(ctx, studentID, companyID, pair, meta)
	if err == nil {
		return m, created, nil
	}
	if retryableWriteError(err) {
		return match.Match{}, false, errors.Join(ErrConflict, err)
	}
	return match.Match{}, false, err
}

func (r *PostgresMatchRepository) upsertOnce(ctx context.Context, studentID, companyID uuid.UUID, pair scoring.ScoredPair, meta map[string]any) (match.Match, bool, error) {
	components, err := json.Marshal(pair.Components)
	if err != nil {
		return match.Match{}, false, err
	}
	insights, err := json.Marshal(pair.Insights)
	if err != nil {
		return match.Match{}, false, err
	}
	history, err := json.Marshal([]match.Interaction{match.CreatedEntry(meta)})
	if err != nil {
		return match.Match{}, false, err
	}

	now := time.Now().UTC()
	row := r.db.QueryRow(ctx,
		`INSERT INTO matches (id, student_id, company_id, match_score, match_components, match_type, ai_insights, status, interaction_history, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
		 ON CONFLICT (student_id, company_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			match_components = EXCLUDED.match_components,
			match_type = EXCLUDED.match_type,
			ai_insights = EXCLUDED.ai_insights,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+matchColumns+`, (xmax = 0) AS inserted`,
		uuid.New(),
		studentID,
		companyID,
		pair.Score,
		components,
		string(pair.MatchType),
		insights,
		string(match.StatusPending),
		history,
		now,
	)

	var created bool
	m, err := scanMatch(row, &created)
	if err != nil {
		return match.Match{}, false, err
	}
	return m, created, nil
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) FindByPair(ctx context.Context, studentID, companyID uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE student_id = $1 AND company_id = $2`,
		studentID, companyID,
	)
	m, err := scanMatch(row, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

// UpdateStatus sets the status and appends one interaction entry in a
// single statement, so concurrent updates cannot drop history entries.
func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status match.Status, performedBy match.Actor, metadata map[string]any) (match.Match, error) {
	entry, err := json.Marshal(match.StatusEntry(status, performedBy, metadata))
	if err != nil {
		return match.Match{}, err
	}

	row := r.db.QueryRow(ctx,
		`UPDATE matches SET
			status = $2,
			interaction_history = interaction_history || $3::jsonb,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+matchColumns,
		id, string(status), entry,
	)
	m, err := scanMatch(row, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) ListViewedStudentIDs(ctx context.Context, companyID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT student_id FROM matches
		 WHERE company_id = $1 AND status = $2
		 ORDER BY student_id
		 LIMIT $3`,
		companyID, string(match.StatusViewed), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanMatch(row database.Row, created *bool) (match.Match, error) {
	var (
		m          match.Match
		components []byte
		insights   []byte
		history    []byte
		matchType  string
		status     string
	)

	dest := []any{
		&m.ID, &m.StudentID, &m.CompanyID, &m.MatchScore,
		&components, &matchType, &insights, &status, &history,
		&m.CreatedAt, &m.UpdatedAt,
	}
	if created != nil {
		dest = append(dest, created)
	}
	if err := row.Scan(dest...); err != nil {
		return match.Match{}, err
	}

	m.MatchType = match.Type(matchType)
	m.Status = match.Status(status)
	if len(components) > 0 {
		if err := json.Unmarshal(components, &m.Components); err != nil {
			return match.Match{}, err
		}
	}
	if len(insights) > 0 {
		if err := json.Unmarshal(insights, &m.Insights); err != nil {
			return match.Match{}, err
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &m.Interactions); err != nil {
			return match.Match{}, err
		}
	}
	return m, nil
}

func retryableWriteError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23505", "40001", "40P01":
		return true
	}
	return false
}

var _ MatchRepository = (*PostgresMatchRepository)(nil)
