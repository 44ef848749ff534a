package app

import (
	"context"
	"time"

	"talentlink/internal/config"
	"talentlink/internal/database"
	"talentlink/internal/database/migration"
	dbpostgres "talentlink/internal/database/postgres"
	"talentlink/internal/domain/scoring"
	"talentlink/internal/infrastructure/cache"
	"talentlink/internal/infrastructure/provider"
	"talentlink/internal/repository"
	"talentlink/internal/usecase"

	"go.uber.org/zap"
)

// Container wires configuration, infrastructure, and usecases together.
// Remote providers and redis are optional: a missing provider URL or an
// unreachable redis degrades to local scoring and uncached reads.
type Container struct {
	Config config.Config
	Logger *zap.SugaredLogger
	DB     database.DB
	Redis  *cache.Redis

	Matching usecase.MatchingUsecase
	Batch    usecase.BatchUsecase
	Quality  usecase.QualityUsecase
}

func NewContainer(cfg config.Config, logger *zap.SugaredLogger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	students := repository.NewPostgresStudentRepository(db)
	companies := repository.NewPostgresCompanyRepository(db)
	postings := repository.NewPostgresPostingRepository(db)
	matches := repository.NewPostgresMatchRepository(db)

	selector := usecase.NewCandidateSelector(students, companies, matches, cfg.Matching.CandidateCap)
	local := scoring.NewLocalScorer(cfg.Matching.SkillsWeight)

	// Keep a typed nil out of the interface values so the usecases' nil
	// checks stay meaningful.
	var remote scoring.Scorer
	if rs := provider.NewRemoteScorer(cfg.Provider, logger); rs != nil {
		remote = rs
	}
	var assessor provider.QualityAssessor
	if rq := provider.NewRemoteQuality(cfg.Provider, logger); rq != nil {
		assessor = rq
	}

	matching := usecase.NewMatchingUsecase(
		students, companies, postings, matches,
		selector, remote, local,
		redisCache, cfg.Matching.CacheTTL,
		logger,
	)
	batch := usecase.NewBatchUsecase(
		students, companies, matches,
		remote, local,
		cfg.Matching.BatchWorkers,
		cfg.Matching.DefaultBatchCompanies,
		cfg.Matching.DefaultBatchStudents,
		logger,
	)
	quality := usecase.NewQualityUsecase(matches, assessor, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    redisCache,
		Matching: matching,
		Batch:    batch,
		Quality:  quality,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
