package usecase

import (
	"context"
	"errors"
	"testing"

	"talentlink/internal/domain/company"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/domain/student"
	"talentlink/internal/pkg/logging"

	"github.com/google/uuid"
)

func newTestBatch(students *memStudentRepo, companies *memCompanyRepo, matches *memMatchRepo) *Batch {
	return NewBatchUsecase(students, companies, matches, nil, scoring.NewLocalScorer(0.4), 4, 50, 100, logging.NewNop())
}

func TestBatch_Generate_PartialFailureIsolation(t *testing.T) {
	studentID := uuid.New()
	c1 := uuid.New()
	c2 := uuid.New()

	students := &memStudentRepo{students: []student.Student{{ID: studentID, Skills: []string{"go"}}}}
	companies := &memCompanyRepo{companies: []company.Company{
		{ID: c1, Skills: []string{"go"}},
		{ID: c2, Skills: []string{"go"}},
	}}
	matches := newMemMatchRepo()
	matches.failPair[pairKey(studentID, c2)] = errors.New("storage exploded")

	uc := newTestBatch(students, companies, matches)

	res, err := uc.Generate(context.Background(), BatchParams{
		StudentIDs: []uuid.UUID{studentID},
		CompanyIDs: []uuid.UUID{c1, c2},
	})
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}

	if res.Total != 2 {
		t.Fatalf("expected total 2, got %d", res.Total)
	}
	if res.Created != 1 || res.Updated != 0 {
		t.Fatalf("expected created=1 updated=0, got created=%d updated=%d", res.Created, res.Updated)
	}
	if res.Failed != 1 || len(res.Errors) != 1 {
		t.Fatalf("expected failed=1 with one error, got failed=%d errors=%d", res.Failed, len(res.Errors))
	}
	if res.Errors[0].StudentID != studentID || res.Errors[0].CompanyID != c2 {
		t.Fatalf("error entry must carry the failing pair ids")
	}
	if res.Errors[0].Error == "" {
		t.Fatalf("error entry must carry a message")
	}
}

func TestBatch_Generate_Idempotent(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	c1 := uuid.New()

	students := &memStudentRepo{students: []student.Student{
		{ID: s1, Skills: []string{"go"}},
		{ID: s2, Skills: []string{"python"}},
	}}
	companies := &memCompanyRepo{companies: []company.Company{{ID: c1, Skills: []string{"go"}}}}
	matches := newMemMatchRepo()

	uc := newTestBatch(students, companies, matches)

	first, err := uc.Generate(context.Background(), BatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Created != 2 || first.Updated != 0 || first.Failed != 0 {
		t.Fatalf("unexpected first run counters: %+v", first)
	}

	second, err := uc.Generate(context.Background(), BatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Created != 0 || second.Updated != 2 {
		t.Fatalf("re-run must only update, got %+v", second)
	}
	if len(matches.byKey) != 2 {
		t.Fatalf("expected 2 match records after two runs, got %d", len(matches.byKey))
	}
}

func TestBatch_Generate_EmptySets(t *testing.T) {
	uc := newTestBatch(&memStudentRepo{}, &memCompanyRepo{}, newMemMatchRepo())

	res, err := uc.Generate(context.Background(), BatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Total != 0 || res.Created != 0 || res.Failed != 0 {
		t.Fatalf("expected zeroed result, got %+v", res)
	}
}

func TestBatch_Generate_RemoteFallbackPerPair(t *testing.T) {
	s1 := uuid.New()
	c1 := uuid.New()

	students := &memStudentRepo{students: []student.Student{{ID: s1, Skills: []string{"go"}}}}
	companies := &memCompanyRepo{companies: []company.Company{{ID: c1, Skills: []string{"go"}}}}
	matches := newMemMatchRepo()

	remote := &stubScorer{err: scoring.ErrUnavailable}
	uc := NewBatchUsecase(students, companies, matches, remote, scoring.NewLocalScorer(0.4), 2, 50, 100, logging.NewNop())

	res, err := uc.Generate(context.Background(), BatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Created != 1 || res.Failed != 0 {
		t.Fatalf("expected local fallback to score the pair, got %+v", res)
	}
	if remote.calls != 1 {
		t.Fatalf("expected one remote attempt, got %d", remote.calls)
	}

	m, err := matches.FindByPair(context.Background(), s1, c1)
	if err != nil {
		t.Fatalf("expected match persisted: %v", err)
	}
	if m.MatchScore != 40 {
		t.Fatalf("expected fallback score 40, got %d", m.MatchScore)
	}
}
