package usecase

import (
	"context"
	"testing"

	"talentlink/internal/domain/company"
	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/domain/student"

	"github.com/google/uuid"
)

func TestSelector_SelectCompanies_ExcludesAndCaps(t *testing.T) {
	companies := make([]company.Company, 0, 10)
	for i := 0; i < 10; i++ {
		companies = append(companies, company.Company{ID: uuid.New()})
	}
	excluded := companies[0].ID

	sel := NewCandidateSelector(
		&memStudentRepo{},
		&memCompanyRepo{companies: companies},
		newMemMatchRepo(),
		100,
	)

	out, err := sel.SelectCompanies(context.Background(), student.Student{ID: uuid.New()}, SelectorFilters{
		ExcludeIDs: []uuid.UUID{excluded},
		Cap:        5,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(out))
	}
	for _, c := range out {
		if c.ID == excluded {
			t.Fatalf("excluded id must never appear in output")
		}
	}

	// Stable for fixed input.
	again, err := sel.SelectCompanies(context.Background(), student.Student{ID: uuid.New()}, SelectorFilters{
		ExcludeIDs: []uuid.UUID{excluded},
		Cap:        5,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := range out {
		if out[i].ID != again[i].ID {
			t.Fatalf("selector output must be stable for a fixed input")
		}
	}
}

func TestSelector_SelectStudents_UnionsViewedWithoutDuplicates(t *testing.T) {
	industry := "fintech"
	a := student.Student{ID: uuid.New(), Skills: []string{"go"}}
	b := student.Student{ID: uuid.New(), Skills: []string{"python"}}

	companyID := uuid.New()
	matches := newMemMatchRepo()
	// b both prefers the industry and has viewed the company.
	if _, _, err := matches.UpsertScored(context.Background(), b.ID, companyID, scoring.ScoredPair{MatchType: match.TypeBasic}, nil); err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	seeded, err := matches.FindByPair(context.Background(), b.ID, companyID)
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if _, err := matches.UpdateStatus(context.Background(), seeded.ID, match.StatusViewed, match.ActorStudent, nil); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	sel := NewCandidateSelector(
		&memStudentRepo{students: []student.Student{a, b}},
		&memCompanyRepo{},
		matches,
		100,
	)

	out, err := sel.SelectStudents(context.Background(), company.Company{ID: companyID, Industry: &industry}, nil, SelectorFilters{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 unique students, got %d", len(out))
	}
	seen := map[uuid.UUID]int{}
	for _, s := range out {
		seen[s.ID]++
	}
	if seen[a.ID] != 1 || seen[b.ID] != 1 {
		t.Fatalf("union must not duplicate students: %v", seen)
	}
}

func TestSelector_SelectStudents_ViewedOnlyWhenNoIndustry(t *testing.T) {
	viewer := student.Student{ID: uuid.New(), Skills: []string{"go"}}
	other := student.Student{ID: uuid.New(), Skills: []string{"python"}}

	companyID := uuid.New()
	matches := newMemMatchRepo()
	if _, _, err := matches.UpsertScored(context.Background(), viewer.ID, companyID, scoring.ScoredPair{MatchType: match.TypeBasic}, nil); err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	seeded, err := matches.FindByPair(context.Background(), viewer.ID, companyID)
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if _, err := matches.UpdateStatus(context.Background(), seeded.ID, match.StatusViewed, match.ActorStudent, nil); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	students := &memStudentRepo{students: []student.Student{viewer, other}}
	sel := NewCandidateSelector(students, &memCompanyRepo{}, matches, 100)

	out, err := sel.SelectStudents(context.Background(), company.Company{ID: companyID}, nil, SelectorFilters{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].ID != viewer.ID {
		t.Fatalf("expected only the viewing student, got %d", len(out))
	}
}
