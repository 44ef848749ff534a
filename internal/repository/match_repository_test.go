package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentlink/internal/database"
	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubDB struct {
	queryRow func(query string, args ...any) database.Row
	query    func(query string, args ...any) (database.Rows, error)
}

func (d *stubDB) Ping(context.Context) error { return nil }

func (d *stubDB) Close() error { return nil }

func (d *stubDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("unexpected Exec")
}

func (d *stubDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	if d.query == nil {
		return nil, errors.New("unexpected Query")
	}
	return d.query(query, args...)
}

func (d *stubDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	return d.queryRow(query, args...)
}

func (d *stubDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("unexpected Begin")
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

// matchRow fills the matchColumns scan targets, plus the trailing
// inserted flag when the caller asks for it.
type matchRow struct {
	id        uuid.UUID
	studentID uuid.UUID
	companyID uuid.UUID
	score     int
	inserted  bool
}

func (r matchRow) Scan(dest ...any) error {
	*dest[0].(*uuid.UUID) = r.id
	*dest[1].(*uuid.UUID) = r.studentID
	*dest[2].(*uuid.UUID) = r.companyID
	*dest[3].(*int) = r.score
	*dest[4].(*[]byte) = []byte(`{}`)
	*dest[5].(*string) = string(match.TypeBasic)
	*dest[6].(*[]byte) = []byte(`{}`)
	*dest[7].(*string) = string(match.StatusPending)
	*dest[8].(*[]byte) = []byte(`[]`)
	now := time.Now().UTC()
	*dest[9].(*time.Time) = now
	*dest[10].(*time.Time) = now
	if len(dest) > 11 {
		*dest[11].(*bool) = r.inserted
	}
	return nil
}

type emptyRows struct{}

func (emptyRows) Close()            {}
func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return errors.New("no rows") }
func (emptyRows) Err() error        { return nil }

func TestMatchRepository_UpsertScored_RetriesOnceOnConflict(t *testing.T) {
	studentID := uuid.New()
	companyID := uuid.New()
	matchID := uuid.New()

	calls := 0
	db := &stubDB{queryRow: func(string, ...any) database.Row {
		calls++
		if calls == 1 {
			return errRow{err: &pgconn.PgError{Code: "23505"}}
		}
		return matchRow{id: matchID, studentID: studentID, companyID: companyID, score: 40, inserted: false}
	}}

	repo := NewPostgresMatchRepository(db)
	m, created, err := repo.UpsertScored(context.Background(), studentID, companyID, scoring.ScoredPair{
		Score:     40,
		MatchType: match.TypeBasic,
	}, nil)
	if err != nil {
		t.Fatalf("retry must recover from a single conflict: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one retry, got %d attempts", calls)
	}
	if created {
		t.Fatalf("conflicting write must resolve as an update")
	}
	if m.ID != matchID || m.MatchScore != 40 {
		t.Fatalf("unexpected match after retry: %+v", m)
	}
}

func TestMatchRepository_UpsertScored_SurfacesConflictAfterRetry(t *testing.T) {
	calls := 0
	db := &stubDB{queryRow: func(string, ...any) database.Row {
		calls++
		return errRow{err: &pgconn.PgError{Code: "40001"}}
	}}

	repo := NewPostgresMatchRepository(db)
	_, _, err := repo.UpsertScored(context.Background(), uuid.New(), uuid.New(), scoring.ScoredPair{}, nil)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after the retry failed, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly two attempts, got %d", calls)
	}
}

func TestMatchRepository_UpsertScored_NonRetryableFailsImmediately(t *testing.T) {
	boom := errors.New("connection torn down")
	calls := 0
	db := &stubDB{queryRow: func(string, ...any) database.Row {
		calls++
		return errRow{err: boom}
	}}

	repo := NewPostgresMatchRepository(db)
	_, _, err := repo.UpsertScored(context.Background(), uuid.New(), uuid.New(), scoring.ScoredPair{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the raw error to surface, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("non-retryable errors must not be reported as conflicts")
	}
	if calls != 1 {
		t.Fatalf("non-retryable errors must not be retried, got %d attempts", calls)
	}
}
