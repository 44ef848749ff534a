package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"talentlink/internal/config"
	"talentlink/internal/domain/match"
	"talentlink/internal/domain/scoring"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RemoteScorer calls the external scoring provider. Every failure mode
// (transport, non-2xx, malformed body) surfaces as scoring.ErrUnavailable
// so the caller can fall back to the local scorer. It never retries and
// never writes matches.
type RemoteScorer struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

type scoreRequest struct {
	Subject    scoreSubject     `json:"subject"`
	Candidates []scoreCandidate `json:"candidates"`
	Options    scoreOptions     `json:"options"`
}

type scoreSubject struct {
	ID     string   `json:"id"`
	Side   string   `json:"side"`
	Skills []string `json:"skills"`
}

type scoreCandidate struct {
	ID     string   `json:"id"`
	Skills []string `json:"skills"`
}

type scoreOptions struct {
	Limit    int     `json:"limit"`
	MinScore float64 `json:"min_score"`
}

type scoreResponse struct {
	Results []scoreResult `json:"results"`
}

type scoreResult struct {
	CandidateID string                     `json:"candidate_id"`
	Score       int                        `json:"score"`
	Components  map[string]match.Component `json:"components"`
	Insights    match.Insights             `json:"insights"`
}

// NewRemoteScorer returns nil when no scoring URL is configured; the
// caller treats a nil scorer as permanently unavailable.
func NewRemoteScorer(cfg config.ProviderConfig, logger *zap.SugaredLogger) *RemoteScorer {
	baseURL := strings.TrimSpace(cfg.ScoringURL)
	if baseURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		client.SetAuthToken(key)
	}

	return &RemoteScorer{client: client, logger: logger}
}

func (s *RemoteScorer) Score(ctx context.Context, subject scoring.Subject, candidates []scoring.Candidate, opts scoring.Options) ([]scoring.ScoredPair, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("remote scorer not configured: %w", scoring.ErrUnavailable)
	}
	if len(candidates) == 0 {
		return []scoring.ScoredPair{}, nil
	}

	body := scoreRequest{
		Subject: scoreSubject{
			ID:     subject.ID.String(),
			Side:   string(subject.Side),
			Skills: subject.Skills,
		},
		Candidates: make([]scoreCandidate, 0, len(candidates)),
		Options: scoreOptions{
			Limit:    opts.EffectiveLimit(),
			MinScore: opts.MinScore,
		},
	}
	for _, c := range candidates {
		body.Candidates = append(body.Candidates, scoreCandidate{ID: c.ID.String(), Skills: c.Skills})
	}

	resp, err := s.client.R().SetContext(ctx).SetBody(body).Post("/score")
	if err != nil {
		s.warn("scoring provider request failed", err)
		return nil, fmt.Errorf("scoring provider request: %v: %w", err, scoring.ErrUnavailable)
	}
	if resp.IsError() {
		s.warn("scoring provider returned error status", fmt.Errorf("status=%d", resp.StatusCode()))
		return nil, fmt.Errorf("scoring provider status %d: %w", resp.StatusCode(), scoring.ErrUnavailable)
	}

	var out scoreResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		s.warn("scoring provider returned malformed payload", err)
		return nil, fmt.Errorf("scoring provider payload: %v: %w", err, scoring.ErrUnavailable)
	}

	pairs := make([]scoring.ScoredPair, 0, len(out.Results))
	for _, r := range out.Results {
		id, err := uuid.Parse(strings.TrimSpace(r.CandidateID))
		if err != nil {
			s.warn("scoring provider returned invalid candidate id", err)
			return nil, fmt.Errorf("scoring provider candidate id %q: %w", r.CandidateID, scoring.ErrUnavailable)
		}
		score := r.Score
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		pairs = append(pairs, scoring.ScoredPair{
			CandidateID: id,
			Score:       score,
			Components:  r.Components,
			Insights:    r.Insights,
			MatchType:   match.TypeAI,
		})
	}
	return pairs, nil
}

func (s *RemoteScorer) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warnw(msg, "error", err)
	}
}

var _ scoring.Scorer = (*RemoteScorer)(nil)
