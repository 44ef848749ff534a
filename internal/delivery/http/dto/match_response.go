package dto

import (
	"time"

	"talentlink/internal/domain/match"

	"github.com/google/uuid"
)

type ComponentResponse struct {
	Score        float64  `json:"score"`
	MatchedItems []string `json:"matched_items"`
	MissingItems []string `json:"missing_items"`
}

type InsightsResponse struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
}

type InteractionResponse struct {
	Action      string         `json:"action"`
	PerformedBy string         `json:"performed_by"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

type MatchResponse struct {
	MatchID      uuid.UUID                    `json:"match_id"`
	StudentID    uuid.UUID                    `json:"student_id"`
	CompanyID    uuid.UUID                    `json:"company_id"`
	MatchScore   int                          `json:"match_score"`
	MatchType    string                       `json:"match_type"`
	Status       string                       `json:"status"`
	Components   map[string]ComponentResponse `json:"match_components"`
	Insights     InsightsResponse             `json:"ai_insights"`
	Interactions []InteractionResponse        `json:"interaction_history"`
	CreatedAt    string                       `json:"created_at"`
	UpdatedAt    string                       `json:"updated_at"`
}

type MatchListResponse struct {
	Matches   []MatchResponse `json:"matches"`
	Count     int             `json:"count"`
	FromCache bool            `json:"from_cache"`
}

type UpdateMatchStatusRequest struct {
	Status      string         `json:"status"`
	PerformedBy string         `json:"performed_by"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	components := make(map[string]ComponentResponse, len(m.Components))
	for name, c := range m.Components {
		components[name] = ComponentResponse{
			Score:        c.Score,
			MatchedItems: emptyIfNil(c.MatchedItems),
			MissingItems: emptyIfNil(c.MissingItems),
		}
	}

	interactions := make([]InteractionResponse, 0, len(m.Interactions))
	for _, it := range m.Interactions {
		interactions = append(interactions, InteractionResponse{
			Action:      it.Action,
			PerformedBy: string(it.PerformedBy),
			Metadata:    it.Metadata,
			Timestamp:   it.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	return MatchResponse{
		MatchID:    m.ID,
		StudentID:  m.StudentID,
		CompanyID:  m.CompanyID,
		MatchScore: m.MatchScore,
		MatchType:  string(m.MatchType),
		Status:     string(m.Status),
		Components: components,
		Insights: InsightsResponse{
			Summary:   m.Insights.Summary,
			Strengths: emptyIfNil(m.Insights.Strengths),
			Concerns:  emptyIfNil(m.Insights.Concerns),
		},
		Interactions: interactions,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewMatchListResponse(matches []match.Match, fromCache bool) MatchListResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, NewMatchResponse(m))
	}
	return MatchListResponse{Matches: out, Count: len(out), FromCache: fromCache}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
