package usecase

import (
	"context"

	"talentlink/internal/domain/company"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/student"
	"talentlink/internal/repository"

	"github.com/google/uuid"
)

const DefaultCandidateCap = 100

// SelectorFilters narrows candidate selection. ExcludeIDs are never
// present in the output; Cap bounds it (DefaultCandidateCap when zero).
type SelectorFilters struct {
	Scope      posting.Kind
	ExcludeIDs []uuid.UUID
	Cap        int
}

func (f SelectorFilters) effectiveCap(def int) int {
	if f.Cap > 0 {
		return f.Cap
	}
	if def > 0 {
		return def
	}
	return DefaultCandidateCap
}

// CandidateSelector produces the bounded candidate set worth scoring for
// a subject. Output ordering is stable for a fixed input so cached
// results stay comparable across calls.
type CandidateSelector struct {
	students  repository.StudentRepository
	companies repository.CompanyRepository
	matches   repository.MatchRepository
	cap       int
}

func NewCandidateSelector(
	students repository.StudentRepository,
	companies repository.CompanyRepository,
	matches repository.MatchRepository,
	cap int,
) *CandidateSelector {
	if cap <= 0 {
		cap = DefaultCandidateCap
	}
	return &CandidateSelector{students: students, companies: companies, matches: matches, cap: cap}
}

// SelectCompanies picks companies worth scoring for a student, filtered
// by the student's declared preferences and, when a scope is given,
// restricted to companies with an open posting of that kind.
func (s *CandidateSelector) SelectCompanies(ctx context.Context, subject student.Student, filters SelectorFilters) ([]company.Company, error) {
	cap := filters.effectiveCap(s.cap)

	// Over-fetch so exclusions do not shrink the candidate set below cap.
	fetch := cap + len(filters.ExcludeIDs)
	candidates, err := s.companies.ListByPreferences(ctx, subject.Preferences, filters.Scope, fetch)
	if err != nil {
		return nil, err
	}

	excluded := idSet(filters.ExcludeIDs)
	out := make([]company.Company, 0, cap)
	for _, c := range candidates {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		out = append(out, c)
		if len(out) >= cap {
			break
		}
	}
	return out, nil
}

// SelectStudents picks students worth scoring for a company. With a
// posting it filters on the posting's requirements; without one it
// unions students preferring the company's industry with students who
// previously viewed the company.
func (s *CandidateSelector) SelectStudents(ctx context.Context, subject company.Company, post *posting.Posting, filters SelectorFilters) ([]student.Student, error) {
	cap := filters.effectiveCap(s.cap)
	fetch := cap + len(filters.ExcludeIDs)

	var candidates []student.Student
	var err error

	if post != nil {
		candidates, err = s.students.ListByPostingRequirements(ctx, *post, fetch)
		if err != nil {
			return nil, err
		}
	} else {
		industry := ""
		if subject.Industry != nil {
			industry = *subject.Industry
		}
		if industry != "" {
			candidates, err = s.students.ListByIndustryPreference(ctx, industry, fetch)
			if err != nil {
				return nil, err
			}
		}

		viewedIDs, err := s.matches.ListViewedStudentIDs(ctx, subject.ID, fetch)
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]struct{}, len(candidates))
		for _, c := range candidates {
			seen[c.ID] = struct{}{}
		}
		missing := make([]uuid.UUID, 0, len(viewedIDs))
		for _, id := range viewedIDs {
			if _, ok := seen[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			viewed, err := s.students.ListByIDs(ctx, missing)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, viewed...)
		}
	}

	excluded := idSet(filters.ExcludeIDs)
	out := make([]student.Student, 0, cap)
	for _, c := range candidates {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		out = append(out, c)
		if len(out) >= cap {
			break
		}
	}
	return out, nil
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
