package usecase

import (
	"context"
	"fmt"
	"testing"

	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/infrastructure/provider"

	"github.com/google/uuid"
)

type stubAssessor struct {
	report provider.QualityReport
	err    error
}

func (s *stubAssessor) Assess(context.Context, match.Match) (provider.QualityReport, error) {
	if s.err != nil {
		return provider.QualityReport{}, s.err
	}
	return s.report, nil
}

func seedMatch(t *testing.T, matches *memMatchRepo) match.Match {
	t.Helper()
	m, _, err := matches.UpsertScored(context.Background(), uuid.New(), uuid.New(), scoring.ScoredPair{
		Score:     72,
		MatchType: match.TypeAI,
		Components: map[string]match.Component{
			"skills": {Score: 90, MatchedItems: []string{"go"}},
		},
	}, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return m
}

func TestQuality_AssessMatch_RemoteReport(t *testing.T) {
	matches := newMemMatchRepo()
	m := seedMatch(t, matches)

	want := provider.QualityReport{QualityScore: 88, Confidence: 0.93}
	uc := NewQualityUsecase(matches, &stubAssessor{report: want}, nil)

	got, err := uc.AssessMatch(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.QualityScore != want.QualityScore || got.Confidence != want.Confidence {
		t.Fatalf("expected remote report, got %+v", got)
	}
}

func TestQuality_AssessMatch_LocalFallback(t *testing.T) {
	matches := newMemMatchRepo()
	m := seedMatch(t, matches)

	uc := NewQualityUsecase(matches, &stubAssessor{err: fmt.Errorf("down: %w", scoring.ErrUnavailable)}, nil)

	got, err := uc.AssessMatch(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if got.QualityScore != float64(m.MatchScore) {
		t.Fatalf("fallback quality score must mirror the match score, got %f", got.QualityScore)
	}
	if got.Confidence != fallbackConfidence {
		t.Fatalf("expected fixed fallback confidence, got %f", got.Confidence)
	}
	if len(got.Factors) != 1 || got.Factors[0].Name != "skills" || got.Factors[0].Score != 90 {
		t.Fatalf("factors must come from stored components, got %+v", got.Factors)
	}
	if len(got.Recommendations) == 0 {
		t.Fatalf("expected generic recommendations")
	}
}

func TestQuality_AssessMatch_ProgrammingErrorPropagates(t *testing.T) {
	matches := newMemMatchRepo()
	m := seedMatch(t, matches)

	uc := NewQualityUsecase(matches, &stubAssessor{err: fmt.Errorf("nil map write")}, nil)
	if _, err := uc.AssessMatch(context.Background(), m.ID); err == nil {
		t.Fatalf("non-unavailable assessor errors must propagate")
	}
}

func TestQuality_AssessMatch_NotFound(t *testing.T) {
	uc := NewQualityUsecase(newMemMatchRepo(), nil, nil)
	if _, err := uc.AssessMatch(context.Background(), uuid.New()); err != match.ErrNotFound {
		t.Fatalf("expected match.ErrNotFound, got %v", err)
	}
}
