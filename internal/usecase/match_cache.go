package usecase

import (
	"context"
	"time"

	"talentlink/internal/domain/match"
)

// MatchCache is the cache-aside backend for computed match lists. A
// failing backend behaves as a permanent miss; it never fails a request.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// MatchList is the result of a match query, annotated with whether it
// was served from the cache without recomputation.
type MatchList struct {
	Matches   []match.Match `json:"matches"`
	FromCache bool          `json:"from_cache"`
}

// getOrCompute is the cache-aside wrapper around the full selection and
// scoring pipeline: hit returns the cached value verbatim, miss (or
// forceRefresh) computes, stores under key with ttl, and returns.
func getOrCompute(
	ctx context.Context,
	cache MatchCache,
	key string,
	ttl time.Duration,
	forceRefresh bool,
	compute func(ctx context.Context) ([]match.Match, error),
) (MatchList, error) {
	if cache != nil && !forceRefresh {
		var cached []match.Match
		found, err := cache.GetJSON(ctx, key, &cached)
		if err == nil && found {
			return MatchList{Matches: cached, FromCache: true}, nil
		}
	}

	matches, err := compute(ctx)
	if err != nil {
		return MatchList{}, err
	}

	if cache != nil {
		_ = cache.SetJSON(ctx, key, matches, ttl)
	}
	return MatchList{Matches: matches, FromCache: false}, nil
}
