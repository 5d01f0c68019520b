package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// reviewRequest carries one tier's grade submission. The grade vocabulary is
// closed; comments are free text.
type reviewRequest struct {
	Grade   string `json:"grade"   validate:"required,oneof=SS S A+ A B C D"`
	Comment string `json:"comment" validate:"max=4000"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=4000"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type reviewResponse struct {
	ReviewerID string    `json:"reviewer_id"`
	Grade      string    `json:"grade"`
	Comment    string    `json:"comment,omitempty"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

type evaluationResponse struct {
	ID              string          `json:"id"`
	SubjectID       string          `json:"subject_id"`
	FiscalYearID    string          `json:"fiscal_year_id"`
	Period          string          `json:"period"`
	DepartmentID    string          `json:"department_id,omitempty"`
	Status          string          `json:"status"`
	EvaluatorID     string          `json:"evaluator_id,omitempty"`
	EvaluatorReview *reviewResponse `json:"evaluator_review,omitempty"`
	ManagerReview   *reviewResponse `json:"manager_review,omitempty"`
	DirectorReview  *reviewResponse `json:"director_review,omitempty"`
	FinalizedAt     *time.Time      `json:"finalized_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type evaluationListResponse struct {
	Data []evaluationResponse `json:"data"`
}

type countsResponse struct {
	PendingEvaluations int64 `json:"pending_evaluations"`
	ManagerPending     int64 `json:"manager_pending"`
	DirectorPending    int64 `json:"director_pending"`
	FinalizePending    int64 `json:"finalize_pending"`
}
