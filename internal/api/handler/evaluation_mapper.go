package handler

import "github.com/hrpulse/evaluation-system/internal/core/domain"

func toReviewResponse(r *domain.Review) *reviewResponse {
	if r == nil {
		return nil
	}
	return &reviewResponse{
		ReviewerID: r.ReviewerID,
		Grade:      r.Grade,
		Comment:    r.Comment,
		ReviewedAt: r.ReviewedAt,
	}
}

func toEvaluationResponse(e *domain.Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:              e.ID,
		SubjectID:       e.SubjectID,
		FiscalYearID:    e.FiscalYearID,
		Period:          string(e.Period),
		DepartmentID:    e.DepartmentID,
		Status:          string(e.Status),
		EvaluatorID:     e.EvaluatorID,
		EvaluatorReview: toReviewResponse(e.EvaluatorReview),
		ManagerReview:   toReviewResponse(e.ManagerReview),
		DirectorReview:  toReviewResponse(e.DirectorReview),
		FinalizedAt:     e.FinalizedAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toEvaluationListResponse(evals []*domain.Evaluation) evaluationListResponse {
	items := make([]evaluationResponse, 0, len(evals))
	for _, e := range evals {
		items = append(items, toEvaluationResponse(e))
	}
	return evaluationListResponse{Data: items}
}
