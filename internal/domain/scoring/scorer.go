package scoring

import (
	"context"
	"errors"

	"talentlink/internal/domain/match"

	"github.com/google/uuid"
)

// ErrUnavailable marks a scoring provider failure the caller is expected
// to recover from by scoring locally. Anything not wrapping it is a
// programming error and must propagate.
var ErrUnavailable = errors.New("scoring provider unavailable")

const (
	DefaultLimit        = 20
	DefaultSkillsWeight = 0.4
)

// Subject is the entity candidates are scored against.
type Subject struct {
	ID     uuid.UUID
	Side   Side
	Skills []string
}

type Side string

const (
	SideStudent Side = "student"
	SideCompany Side = "company"
)

type Candidate struct {
	ID     uuid.UUID
	Skills []string
}

type Options struct {
	Limit    int
	MinScore float64
}

func (o Options) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

type ScoredPair struct {
	CandidateID uuid.UUID
	Score       int
	Components  map[string]match.Component
	Insights    match.Insights
	MatchType   match.Type
}

// Scorer ranks candidates against a subject. RemoteScorer and
// LocalScorer implement it; the usecase layer picks between them.
type Scorer interface {
	Score(ctx context.Context, subject Subject, candidates []Candidate, opts Options) ([]ScoredPair, error)
}
