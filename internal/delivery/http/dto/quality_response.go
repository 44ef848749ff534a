package dto

import "talentlink/internal/infrastructure/provider"

type QualityFactorResponse struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type QualityReportResponse struct {
	QualityScore    float64                 `json:"quality_score"`
	Confidence      float64                 `json:"confidence"`
	Factors         []QualityFactorResponse `json:"factors"`
	Recommendations []string                `json:"recommendations"`
}

func NewQualityReportResponse(r provider.QualityReport) QualityReportResponse {
	factors := make([]QualityFactorResponse, 0, len(r.Factors))
	for _, f := range r.Factors {
		factors = append(factors, QualityFactorResponse{Name: f.Name, Score: f.Score})
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return QualityReportResponse{
		QualityScore:    r.QualityScore,
		Confidence:      r.Confidence,
		Factors:         factors,
		Recommendations: recs,
	}
}
