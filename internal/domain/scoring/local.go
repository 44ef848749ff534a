package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"talentlink/internal/domain/match"
)

// LocalScorer is the deterministic fallback used when the remote
// provider is unreachable. It only evaluates the skills signal; the
// weight applied to it is configurable because the remaining signal
// weights are not defined yet.
type LocalScorer struct {
	skillsWeight float64
}

func NewLocalScorer(skillsWeight float64) *LocalScorer {
	if skillsWeight <= 0 || skillsWeight > 1 {
		skillsWeight = DefaultSkillsWeight
	}
	return &LocalScorer{skillsWeight: skillsWeight}
}

func (s *LocalScorer) Score(_ context.Context, subject Subject, candidates []Candidate, opts Options) ([]ScoredPair, error) {
	if len(candidates) == 0 {
		return []ScoredPair{}, nil
	}

	subjectSkills := normalizeSkillSet(subject.Skills)

	type ranked struct {
		pair ScoredPair
		raw  float64
	}
	out := make([]ranked, 0, len(candidates))

	for _, c := range candidates {
		candidateSkills := normalizeSkillSet(c.Skills)

		matched := make([]string, 0, len(subjectSkills))
		for sk := range subjectSkills {
			if _, ok := candidateSkills[sk]; ok {
				matched = append(matched, sk)
			}
		}
		missing := make([]string, 0, len(candidateSkills))
		for sk := range candidateSkills {
			if _, ok := subjectSkills[sk]; !ok {
				missing = append(missing, sk)
			}
		}
		sort.Strings(matched)
		sort.Strings(missing)

		denom := len(subjectSkills)
		if denom < 1 {
			denom = 1
		}
		componentScore := float64(len(matched)) / float64(denom) * 100.0
		raw := componentScore * s.skillsWeight
		if raw < opts.MinScore {
			continue
		}

		score := int(math.Round(raw))
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		out = append(out, ranked{
			raw: raw,
			pair: ScoredPair{
				CandidateID: c.ID,
				Score:       score,
				MatchType:   match.TypeBasic,
				Components: map[string]match.Component{
					"skills": {
						Score:        componentScore,
						MatchedItems: matched,
						MissingItems: missing,
					},
				},
				Insights: match.Insights{
					Summary:   fmt.Sprintf("Basic skills match with a compatibility score of %d%%", score),
					Strengths: matched,
					Concerns:  missing,
				},
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].raw > out[j].raw
	})

	limit := opts.EffectiveLimit()
	if len(out) > limit {
		out = out[:limit]
	}

	pairs := make([]ScoredPair, 0, len(out))
	for _, r := range out {
		pairs = append(pairs, r.pair)
	}
	return pairs, nil
}

func normalizeSkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

var _ Scorer = (*LocalScorer)(nil)
