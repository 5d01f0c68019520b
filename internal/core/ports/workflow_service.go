package ports

import (
	"context"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

// SubmitSelfInput identifies the evaluation and the acting subject.
type SubmitSelfInput struct {
	TenantID     string
	EvaluationID string
	ActorID      string
}

// ReviewInput carries one tier's submission: the acting reviewer plus the
// grade and optional comment.
type ReviewInput struct {
	TenantID     string
	EvaluationID string
	ActorID      string
	Grade        string
	Comment      string
}

// RejectInput carries a rollback request with an optional reason that is
// appended to the notification message.
type RejectInput struct {
	TenantID     string
	EvaluationID string
	Reason       string
}

// FinalizeInput identifies the evaluation to finalize.
type FinalizeInput struct {
	TenantID     string
	EvaluationID string
}

// WorkflowService drives the evaluation approval state machine:
//
//	not_started → self_submitted → evaluator_submitted → manager_approved
//	    → director_evaluated → finalized
//
// with tier-skipping on the evaluator submission and rollbacks on rejection.
// Role gates are enforced at the transport boundary; the service re-derives
// actor identity (subject ownership, assigned evaluator) as an integrity
// check of its own.
type WorkflowService interface {
	SubmitSelfEvaluation(ctx context.Context, in SubmitSelfInput) (*domain.Evaluation, error)
	SubmitEvaluatorEvaluation(ctx context.Context, in ReviewInput) (*domain.Evaluation, error)
	ApproveByManager(ctx context.Context, in ReviewInput) (*domain.Evaluation, error)
	RejectByManager(ctx context.Context, in RejectInput) (*domain.Evaluation, error)
	SubmitDirectorEvaluation(ctx context.Context, in ReviewInput) (*domain.Evaluation, error)
	RejectByDirector(ctx context.Context, in RejectInput) (*domain.Evaluation, error)
	FinalizeEvaluation(ctx context.Context, in FinalizeInput) (*domain.Evaluation, error)
}

// DashboardCounts summarizes the work waiting on one user, per their role.
type DashboardCounts struct {
	PendingEvaluations int64 // assigned to the user as evaluator, awaiting evaluation
	ManagerPending     int64 // the user's department, awaiting manager approval
	DirectorPending    int64 // tenant-wide, awaiting director evaluation
	FinalizePending    int64 // tenant-wide, awaiting final confirmation
}

// EvaluationQueries exposes the read side of the evaluation workflow.
type EvaluationQueries interface {
	ListMine(ctx context.Context, tenantID, subjectID string) ([]*domain.Evaluation, error)
	ListPending(ctx context.Context, tenantID, evaluatorID string) ([]*domain.Evaluation, error)
	Counts(ctx context.Context, tenantID, userID string) (*DashboardCounts, error)
}
