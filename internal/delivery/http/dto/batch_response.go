package dto

import (
	"talentlink/internal/usecase"

	"github.com/google/uuid"
)

type BatchGenerateRequest struct {
	CompanyIDs []uuid.UUID `json:"company_ids,omitempty"`
	StudentIDs []uuid.UUID `json:"student_ids,omitempty"`
	Type       string      `json:"type,omitempty"`
}

type BatchErrorResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Error     string    `json:"error"`
}

type BatchResultResponse struct {
	Total   int                  `json:"total"`
	Created int                  `json:"created"`
	Updated int                  `json:"updated"`
	Failed  int                  `json:"failed"`
	Errors  []BatchErrorResponse `json:"errors"`
}

func NewBatchResultResponse(res usecase.BatchResult) BatchResultResponse {
	errs := make([]BatchErrorResponse, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, BatchErrorResponse{
			StudentID: e.StudentID,
			CompanyID: e.CompanyID,
			Error:     e.Error,
		})
	}
	return BatchResultResponse{
		Total:   res.Total,
		Created: res.Created,
		Updated: res.Updated,
		Failed:  res.Failed,
		Errors:  errs,
	}
}
