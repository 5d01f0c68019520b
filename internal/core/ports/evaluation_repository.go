package ports

import (
	"context"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

// EvaluationRepository defines persistence operations for evaluations.
// Every query is scoped to a tenant.
type EvaluationRepository interface {
	FindByID(ctx context.Context, tenantID, id string) (*domain.Evaluation, error)

	// Update persists the aggregate conditionally: the write only applies if
	// the stored status still equals fromStatus (the status observed at load
	// time). A concurrent transition loses the race and gets domain.ErrConflict
	// instead of silently overwriting.
	Update(ctx context.Context, e *domain.Evaluation, fromStatus domain.EvaluationStatus) error

	// ListBySubject returns the subject's evaluations, newest fiscal year first.
	ListBySubject(ctx context.Context, tenantID, subjectID string) ([]*domain.Evaluation, error)

	// ListByEvaluatorAndStatus returns evaluations assigned to an evaluator in
	// the given status (the evaluator's work queue).
	ListByEvaluatorAndStatus(ctx context.Context, tenantID, evaluatorID string, status domain.EvaluationStatus) ([]*domain.Evaluation, error)

	CountByEvaluatorAndStatus(ctx context.Context, tenantID, evaluatorID string, status domain.EvaluationStatus) (int64, error)
	CountByDepartmentAndStatus(ctx context.Context, tenantID, departmentID string, status domain.EvaluationStatus) (int64, error)
	CountByStatus(ctx context.Context, tenantID string, status domain.EvaluationStatus) (int64, error)
}
