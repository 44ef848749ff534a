package usecase

import (
	"context"
	"errors"
	"sync"

	"talentlink/internal/domain/company"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/domain/student"
	"talentlink/internal/repository"
	"talentlink/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BatchParams struct {
	CompanyIDs []uuid.UUID
	StudentIDs []uuid.UUID
	// Kind restricts the default company set to companies with an open
	// posting of that kind. Ignored when CompanyIDs are explicit.
	Kind posting.Kind
}

type BatchError struct {
	StudentID uuid.UUID `json:"student_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Error     string    `json:"error"`
}

type BatchResult struct {
	Total   int          `json:"total"`
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Failed  int          `json:"failed"`
	Errors  []BatchError `json:"errors"`
}

type BatchUsecase interface {
	Generate(ctx context.Context, params BatchParams) (BatchResult, error)
}

// Batch regenerates matches across a students × companies cross-product.
// Pairs are scored on a bounded worker pool; a failing pair is recorded
// and never aborts the rest. Re-running over the same sets only updates
// existing matches.
type Batch struct {
	students  repository.StudentRepository
	companies repository.CompanyRepository
	matches   repository.MatchRepository

	remote scoring.Scorer
	local  scoring.Scorer

	workers          int
	defaultCompanies int
	defaultStudents  int

	logger *zap.SugaredLogger
}

func NewBatchUsecase(
	students repository.StudentRepository,
	companies repository.CompanyRepository,
	matches repository.MatchRepository,
	remote scoring.Scorer,
	local scoring.Scorer,
	workers int,
	defaultCompanies int,
	defaultStudents int,
	logger *zap.SugaredLogger,
) *Batch {
	if workers <= 0 {
		workers = 8
	}
	if workers > 64 {
		workers = 64
	}
	if defaultCompanies <= 0 {
		defaultCompanies = 50
	}
	if defaultStudents <= 0 {
		defaultStudents = 100
	}
	return &Batch{
		students:         students,
		companies:        companies,
		matches:          matches,
		remote:           remote,
		local:            local,
		workers:          workers,
		defaultCompanies: defaultCompanies,
		defaultStudents:  defaultStudents,
		logger:           logger,
	}
}

func (u *Batch) Generate(ctx context.Context, params BatchParams) (BatchResult, error) {
	if params.Kind != "" && !params.Kind.Valid() {
		return BatchResult{}, ErrInvalidInput
	}

	studentSet, err := u.resolveStudents(ctx, params.StudentIDs)
	if err != nil {
		return BatchResult{}, err
	}
	companySet, err := u.resolveCompanies(ctx, params.CompanyIDs, params.Kind)
	if err != nil {
		return BatchResult{}, err
	}

	total := len(studentSet) * len(companySet)
	result := BatchResult{Total: total, Errors: []BatchError{}}
	if total == 0 {
		return result, nil
	}

	pool := worker.NewPool(u.workers, total)
	out := pool.Run(ctx)

	var mu sync.Mutex
	meta := map[string]any{"trigger": "batch"}
	if params.Kind != "" {
		meta["kind"] = string(params.Kind)
	}

	for _, s := range studentSet {
		for _, c := range companySet {
			s, c := s, c
			pool.Submit(func(ctx context.Context) error {
				err := u.scorePair(ctx, s, c, meta, &mu, &result)
				if err != nil {
					mu.Lock()
					result.Failed++
					result.Errors = append(result.Errors, BatchError{
						StudentID: s.ID,
						CompanyID: c.ID,
						Error:     err.Error(),
					})
					mu.Unlock()
				}
				return err
			})
		}
	}
	pool.Close()

	for range out {
		// Per-pair outcomes were already recorded by the tasks; draining
		// just waits for the pool.
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if u.logger != nil {
		u.logger.Infow("batch match generation finished",
			"total", result.Total,
			"created", result.Created,
			"updated", result.Updated,
			"failed", result.Failed,
		)
	}
	return result, nil
}

func (u *Batch) scorePair(ctx context.Context, s student.Student, c company.Company, meta map[string]any, mu *sync.Mutex, result *BatchResult) error {
	pairs, err := scoreWithFallback(ctx, u.remote, u.local, u.logger,
		scoring.Subject{ID: s.ID, Side: scoring.SideStudent, Skills: s.Skills},
		[]scoring.Candidate{{ID: c.ID, Skills: c.Skills}},
		scoring.Options{Limit: 1},
	)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return errors.New("scoring produced no result for pair")
	}

	_, created, err := u.matches.UpsertScored(ctx, s.ID, c.ID, pairs[0], meta)
	if err != nil {
		return err
	}

	mu.Lock()
	if created {
		result.Created++
	} else {
		result.Updated++
	}
	mu.Unlock()
	return nil
}

func (u *Batch) resolveStudents(ctx context.Context, ids []uuid.UUID) ([]student.Student, error) {
	if len(ids) > 0 {
		return u.students.ListByIDs(ctx, ids)
	}
	return u.students.ListActive(ctx, u.defaultStudents)
}

func (u *Batch) resolveCompanies(ctx context.Context, ids []uuid.UUID, kind posting.Kind) ([]company.Company, error) {
	if len(ids) > 0 {
		return u.companies.ListByIDs(ctx, ids)
	}
	if kind != "" {
		return u.companies.ListByPreferences(ctx, student.Preferences{}, kind, u.defaultCompanies)
	}
	return u.companies.ListActive(ctx, u.defaultCompanies)
}

var _ BatchUsecase = (*Batch)(nil)
