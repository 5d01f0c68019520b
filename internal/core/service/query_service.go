package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// EvaluationQueryService serves the read side: a user's own evaluations,
// their evaluator work queue, and the dashboard counters.
type EvaluationQueryService struct {
	evals  ports.EvaluationRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewEvaluationQueryService(evals ports.EvaluationRepository, users ports.UserRepository, logger zerolog.Logger) *EvaluationQueryService {
	return &EvaluationQueryService{evals: evals, users: users, logger: logger}
}

func (s *EvaluationQueryService) ListMine(ctx context.Context, tenantID, subjectID string) ([]*domain.Evaluation, error) {
	return s.evals.ListBySubject(ctx, tenantID, subjectID)
}

// ListPending returns the evaluations waiting on the user as evaluator.
func (s *EvaluationQueryService) ListPending(ctx context.Context, tenantID, evaluatorID string) ([]*domain.Evaluation, error) {
	return s.evals.ListByEvaluatorAndStatus(ctx, tenantID, evaluatorID, domain.StatusSelfSubmitted)
}

// Counts computes the dashboard counters relevant to the user's role. Each
// counter is zero unless the user holds the tier it belongs to.
func (s *EvaluationQueryService) Counts(ctx context.Context, tenantID, userID string) (*ports.DashboardCounts, error) {
	user, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	counts := &ports.DashboardCounts{}

	if user.CanPerformEvaluation() {
		counts.PendingEvaluations, err = s.evals.CountByEvaluatorAndStatus(ctx, tenantID, userID, domain.StatusSelfSubmitted)
		if err != nil {
			return nil, fmt.Errorf("dashboard counts: %w", err)
		}
	}

	if user.IsManager() && user.DepartmentID != "" {
		counts.ManagerPending, err = s.evals.CountByDepartmentAndStatus(ctx, tenantID, user.DepartmentID, domain.StatusEvaluatorSubmitted)
		if err != nil {
			return nil, fmt.Errorf("dashboard counts: %w", err)
		}
	}

	if user.Role().AtLeast(domain.RoleDirector) {
		counts.DirectorPending, err = s.evals.CountByStatus(ctx, tenantID, domain.StatusManagerApproved)
		if err != nil {
			return nil, fmt.Errorf("dashboard counts: %w", err)
		}
		counts.FinalizePending, err = s.evals.CountByStatus(ctx, tenantID, domain.StatusDirectorEvaluated)
		if err != nil {
			return nil, fmt.Errorf("dashboard counts: %w", err)
		}
	}

	return counts, nil
}
