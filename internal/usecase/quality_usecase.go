package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/infrastructure/provider"
	"talentlink/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fallbackConfidence is reported when the quality provider is down and
// the report is derived from the match's own stored fields.
const fallbackConfidence = 0.5

type QualityUsecase interface {
	AssessMatch(ctx context.Context, matchID uuid.UUID) (provider.QualityReport, error)
}

type Quality struct {
	matches  repository.MatchRepository
	assessor provider.QualityAssessor // nil when no provider is configured
	logger   *zap.SugaredLogger
}

func NewQualityUsecase(matches repository.MatchRepository, assessor provider.QualityAssessor, logger *zap.SugaredLogger) *Quality {
	return &Quality{matches: matches, assessor: assessor, logger: logger}
}

func (u *Quality) AssessMatch(ctx context.Context, matchID uuid.UUID) (provider.QualityReport, error) {
	if matchID == uuid.Nil {
		return provider.QualityReport{}, match.ErrNotFound
	}

	m, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		return provider.QualityReport{}, err
	}

	if u.assessor != nil {
		report, err := u.assessor.Assess(ctx, m)
		if err == nil {
			return report, nil
		}
		if !errors.Is(err, scoring.ErrUnavailable) {
			return provider.QualityReport{}, err
		}
		if u.logger != nil {
			u.logger.Warnw("quality provider unavailable, summarizing locally",
				"match_id", matchID, "error", err)
		}
	}

	return localQualityReport(m), nil
}

// localQualityReport derives a report from the match's stored score and
// components only; it performs no new computation.
func localQualityReport(m match.Match) provider.QualityReport {
	factors := make([]provider.QualityFactor, 0, len(m.Components))
	for name, c := range m.Components {
		factors = append(factors, provider.QualityFactor{Name: name, Score: c.Score})
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].Name < factors[j].Name })

	return provider.QualityReport{
		QualityScore: float64(m.MatchScore),
		Confidence:   fallbackConfidence,
		Factors:      factors,
		Recommendations: []string{
			fmt.Sprintf("Review the %s match breakdown before reaching out.", m.MatchType),
			"Request a fresh AI assessment once the scoring provider is reachable.",
		},
	}
}

var _ QualityUsecase = (*Quality)(nil)
