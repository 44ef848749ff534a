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
	"go.uber.org/zap"
)

type QualityFactor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type QualityReport struct {
	QualityScore    float64         `json:"quality_score"`
	Confidence      float64         `json:"confidence"`
	Factors         []QualityFactor `json:"factors"`
	Recommendations []string        `json:"recommendations"`
}

// QualityAssessor produces a confidence/quality report for an existing
// match. The remote implementation fails with scoring.ErrUnavailable;
// callers fall back to a summary built from the match itself.
type QualityAssessor interface {
	Assess(ctx context.Context, m match.Match) (QualityReport, error)
}

type RemoteQuality struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

type qualityRequest struct {
	MatchID    string                     `json:"match_id"`
	StudentID  string                     `json:"student_id"`
	CompanyID  string                     `json:"company_id"`
	MatchScore int                        `json:"match_score"`
	MatchType  string                     `json:"match_type"`
	Components map[string]match.Component `json:"components"`
}

func NewRemoteQuality(cfg config.ProviderConfig, logger *zap.SugaredLogger) *RemoteQuality {
	baseURL := strings.TrimSpace(cfg.QualityURL)
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

	return &RemoteQuality{client: client, logger: logger}
}

func (q *RemoteQuality) Assess(ctx context.Context, m match.Match) (QualityReport, error) {
	if q == nil || q.client == nil {
		return QualityReport{}, fmt.Errorf("quality provider not configured: %w", scoring.ErrUnavailable)
	}

	body := qualityRequest{
		MatchID:    m.ID.String(),
		StudentID:  m.StudentID.String(),
		CompanyID:  m.CompanyID.String(),
		MatchScore: m.MatchScore,
		MatchType:  string(m.MatchType),
		Components: m.Components,
	}

	resp, err := q.client.R().SetContext(ctx).SetBody(body).Post("/assess")
	if err != nil {
		q.warn("quality provider request failed", err)
		return QualityReport{}, fmt.Errorf("quality provider request: %v: %w", err, scoring.ErrUnavailable)
	}
	if resp.IsError() {
		q.warn("quality provider returned error status", fmt.Errorf("status=%d", resp.StatusCode()))
		return QualityReport{}, fmt.Errorf("quality provider status %d: %w", resp.StatusCode(), scoring.ErrUnavailable)
	}

	var out QualityReport
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		q.warn("quality provider returned malformed payload", err)
		return QualityReport{}, fmt.Errorf("quality provider payload: %v: %w", err, scoring.ErrUnavailable)
	}
	return out, nil
}

func (q *RemoteQuality) warn(msg string, err error) {
	if q.logger != nil {
		q.logger.Warnw(msg, "error", err)
	}
}

var _ QualityAssessor = (*RemoteQuality)(nil)
