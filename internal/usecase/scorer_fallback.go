package usecase

import (
	"context"
	"errors"

	"talentlink/internal/domain/scoring"

	"go.uber.org/zap"
)

// scoreWithFallback tries the remote provider first and recovers with
// the local scorer only on the well-defined unavailability condition.
// Any other error is a programming fault and propagates unmasked.
func scoreWithFallback(
	ctx context.Context,
	remote scoring.Scorer,
	local scoring.Scorer,
	logger *zap.SugaredLogger,
	subject scoring.Subject,
	candidates []scoring.Candidate,
	opts scoring.Options,
) ([]scoring.ScoredPair, error) {
	if remote != nil {
		pairs, err := remote.Score(ctx, subject, candidates, opts)
		if err == nil {
			return pairs, nil
		}
		if !errors.Is(err, scoring.ErrUnavailable) {
			return nil, err
		}
		if logger != nil {
			logger.Warnw("remote scoring unavailable, scoring locally",
				"subject_id", subject.ID, "candidates", len(candidates), "error", err)
		}
	}
	return local.Score(ctx, subject, candidates, opts)
}
