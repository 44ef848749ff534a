package usecase

import (
	"context"
	"time"

	"talentlink/internal/domain/match"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudentMatchParams struct {
	Limit        int
	MinScore     float64
	Scope        posting.Kind
	ForceRefresh bool
}

type CompanyMatchParams struct {
	Limit        int
	MinScore     float64
	JobID        *uuid.UUID
	InternshipID *uuid.UUID
	ForceRefresh bool
}

type MatchingUsecase interface {
	GetMatchesForStudent(ctx context.Context, studentID uuid.UUID, params StudentMatchParams) (MatchList, error)
	GetMatchesForCompany(ctx context.Context, companyID uuid.UUID, params CompanyMatchParams) (MatchList, error)
	GetMatch(ctx context.Context, matchID uuid.UUID) (match.Match, error)
	UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, status match.Status, performedBy match.Actor, metadata map[string]any) (match.Match, error)
	GetMatchBreakdown(ctx context.Context, matchID uuid.UUID) (map[string]match.Component, error)
}

type Matching struct {
	students repository.StudentRepository
	postings repository.PostingRepository
	matches  repository.MatchRepository

	companies repository.CompanyRepository
	selector  *CandidateSelector

	remote scoring.Scorer // nil when no provider is configured
	local  scoring.Scorer

	cache    MatchCache
	cacheTTL time.Duration

	logger *zap.SugaredLogger
}

func NewMatchingUsecase(
	students repository.StudentRepository,
	companies repository.CompanyRepository,
	postings repository.PostingRepository,
	matches repository.MatchRepository,
	selector *CandidateSelector,
	remote scoring.Scorer,
	local scoring.Scorer,
	cache MatchCache,
	cacheTTL time.Duration,
	logger *zap.SugaredLogger,
) *Matching {
	if cacheTTL <= 0 {
		cacheTTL = 3600 * time.Second
	}
	return &Matching{
		students:  students,
		companies: companies,
		postings:  postings,
		matches:   matches,
		selector:  selector,
		remote:    remote,
		local:     local,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (u *Matching) GetMatchesForStudent(ctx context.Context, studentID uuid.UUID, params StudentMatchParams) (MatchList, error) {
	if studentID == uuid.Nil || params.Limit < 0 || params.MinScore < 0 {
		return MatchList{}, ErrInvalidInput
	}
	if params.Scope != "" && !params.Scope.Valid() {
		return MatchList{}, ErrInvalidInput
	}

	key := matchesCacheKey(string(scoring.SideStudent), studentID, params.Limit, params.MinScore, string(params.Scope), nil)

	return getOrCompute(ctx, u.cache, key, u.cacheTTL, params.ForceRefresh, func(ctx context.Context) ([]match.Match, error) {
		subj, err := u.students.FindByID(ctx, studentID)
		if err != nil {
			return nil, err
		}

		candidates, err := u.selector.SelectCompanies(ctx, subj, SelectorFilters{Scope: params.Scope})
		if err != nil {
			return nil, err
		}

		scoringCandidates := make([]scoring.Candidate, 0, len(candidates))
		for _, c := range candidates {
			scoringCandidates = append(scoringCandidates, scoring.Candidate{ID: c.ID, Skills: c.Skills})
		}

		pairs, err := u.scoreWithFallback(ctx,
			scoring.Subject{ID: subj.ID, Side: scoring.SideStudent, Skills: subj.Skills},
			scoringCandidates,
			scoring.Options{Limit: params.Limit, MinScore: params.MinScore},
		)
		if err != nil {
			return nil, err
		}

		return u.persistPairs(ctx, scoring.SideStudent, studentID, pairs, "student_query")
	})
}

func (u *Matching) GetMatchesForCompany(ctx context.Context, companyID uuid.UUID, params CompanyMatchParams) (MatchList, error) {
	if companyID == uuid.Nil || params.Limit < 0 || params.MinScore < 0 {
		return MatchList{}, ErrInvalidInput
	}
	if params.JobID != nil && params.InternshipID != nil {
		return MatchList{}, ErrInvalidInput
	}

	postingID := params.JobID
	wantKind := posting.KindJob
	if params.InternshipID != nil {
		postingID = params.InternshipID
		wantKind = posting.KindInternship
	}

	key := matchesCacheKey(string(scoring.SideCompany), companyID, params.Limit, params.MinScore, "", postingID)

	return getOrCompute(ctx, u.cache, key, u.cacheTTL, params.ForceRefresh, func(ctx context.Context) ([]match.Match, error) {
		subj, err := u.companies.FindByID(ctx, companyID)
		if err != nil {
			return nil, err
		}

		var post *posting.Posting
		if postingID != nil {
			p, err := u.postings.FindByID(ctx, *postingID)
			if err != nil {
				return nil, err
			}
			if p.Kind != wantKind || p.CompanyID != companyID || !p.Open(time.Now()) {
				return nil, ErrInvalidInput
			}
			post = &p
		}

		candidates, err := u.selector.SelectStudents(ctx, subj, post, SelectorFilters{})
		if err != nil {
			return nil, err
		}

		scoringCandidates := make([]scoring.Candidate, 0, len(candidates))
		for _, s := range candidates {
			scoringCandidates = append(scoringCandidates, scoring.Candidate{ID: s.ID, Skills: s.Skills})
		}

		subjectSkills := subj.Skills
		if post != nil {
			subjectSkills = post.RequiredSkills
		}

		pairs, err := u.scoreWithFallback(ctx,
			scoring.Subject{ID: subj.ID, Side: scoring.SideCompany, Skills: subjectSkills},
			scoringCandidates,
			scoring.Options{Limit: params.Limit, MinScore: params.MinScore},
		)
		if err != nil {
			return nil, err
		}

		return u.persistPairs(ctx, scoring.SideCompany, companyID, pairs, "company_query")
	})
}

func (u *Matching) GetMatch(ctx context.Context, matchID uuid.UUID) (match.Match, error) {
	if matchID == uuid.Nil {
		return match.Match{}, match.ErrNotFound
	}
	return u.matches.FindByID(ctx, matchID)
}

func (u *Matching) UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, status match.Status, performedBy match.Actor, metadata map[string]any) (match.Match, error) {
	if matchID == uuid.Nil || !status.Valid() || !performedBy.Valid() {
		return match.Match{}, ErrInvalidInput
	}

	m, err := u.matches.UpdateStatus(ctx, matchID, status, performedBy, metadata)
	if err != nil {
		return match.Match{}, err
	}

	// Cached lists embed the status, so expire both subjects' lists
	// early instead of waiting out the TTL.
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, matchesCachePattern(string(scoring.SideStudent), m.StudentID))
		_ = u.cache.DeleteByPattern(ctx, matchesCachePattern(string(scoring.SideCompany), m.CompanyID))
	}
	return m, nil
}

func (u *Matching) GetMatchBreakdown(ctx context.Context, matchID uuid.UUID) (map[string]match.Component, error) {
	m, err := u.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Components == nil {
		return map[string]match.Component{}, nil
	}
	return m.Components, nil
}

func (u *Matching) scoreWithFallback(ctx context.Context, subject scoring.Subject, candidates []scoring.Candidate, opts scoring.Options) ([]scoring.ScoredPair, error) {
	return scoreWithFallback(ctx, u.remote, u.local, u.logger, subject, candidates, opts)
}

func (u *Matching) persistPairs(ctx context.Context, side scoring.Side, subjectID uuid.UUID, pairs []scoring.ScoredPair, trigger string) ([]match.Match, error) {
	out := make([]match.Match, 0, len(pairs))
	meta := map[string]any{"trigger": trigger, "subject_id": subjectID.String()}

	for _, p := range pairs {
		studentID, companyID := subjectID, p.CandidateID
		if side == scoring.SideCompany {
			studentID, companyID = p.CandidateID, subjectID
		}

		m, _, err := u.matches.UpsertScored(ctx, studentID, companyID, p, meta)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

var _ MatchingUsecase = (*Matching)(nil)
