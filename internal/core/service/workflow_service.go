package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// WorkflowService implements the evaluation approval state machine.
//
// Each operation is one logical transaction: load the aggregate, check the
// guard, mutate, persist, then dispatch notifications. The persist step is a
// compare-and-swap on the status observed at load, so two concurrent
// requests passing the same guard cannot both win; the loser surfaces
// domain.ErrConflict. Notifications go out only after the write committed
// and are never rolled back.
type WorkflowService struct {
	evals    ports.EvaluationRepository
	users    ports.UserRepository
	notifier *Notifier
	logger   zerolog.Logger
}

func NewWorkflowService(evals ports.EvaluationRepository, users ports.UserRepository, notifier *Notifier, logger zerolog.Logger) *WorkflowService {
	return &WorkflowService{evals: evals, users: users, notifier: notifier, logger: logger}
}

// SubmitSelfEvaluation moves the subject's evaluation from not_started to
// self_submitted. Only the subject themselves may submit.
func (s *WorkflowService) SubmitSelfEvaluation(ctx context.Context, in ports.SubmitSelfInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}
	if !eval.IsOwnedBy(in.ActorID) {
		return nil, fmt.Errorf("submit self evaluation: %w: not the evaluation's subject", domain.ErrForbidden)
	}
	if !eval.CanSelfEvaluate() {
		return nil, invalidState("submit self evaluation", eval.Status)
	}

	from := eval.Status
	eval.Status = domain.StatusSelfSubmitted
	if err := s.persist(ctx, eval, from); err != nil {
		return nil, err
	}

	s.notifier.SelfSubmitted(ctx, eval, subject.Name)
	s.logger.Info().Str("evaluation_id", eval.ID).Str("subject_id", eval.SubjectID).Msg("self evaluation submitted")
	return eval, nil
}

// SubmitEvaluatorEvaluation records the assigned evaluator's review and
// routes the evaluation onward. Routing priority, checked in order:
//
//  1. Evaluator is a director or admin: they are also the director of
//     record, so the director review is written with the same grade and the
//     manager stage is bypassed entirely.
//  2. Subject is senior staff: a senior subject has no peer manager, so the
//     manager stage is skipped and the evaluation waits on a director.
//  3. Otherwise the evaluation waits on the department's managers.
func (s *WorkflowService) SubmitEvaluatorEvaluation(ctx context.Context, in ports.ReviewInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}
	if eval.EvaluatorID == "" || eval.EvaluatorID != in.ActorID {
		return nil, fmt.Errorf("submit evaluator evaluation: %w: not the assigned evaluator", domain.ErrForbidden)
	}
	if !eval.CanEvaluatorSubmit() {
		return nil, invalidState("submit evaluator evaluation", eval.Status)
	}

	evaluator, err := s.users.FindByID(ctx, in.TenantID, in.ActorID)
	if err != nil {
		return nil, fmt.Errorf("submit evaluator evaluation: %w", err)
	}

	now := time.Now().UTC()
	from := eval.Status
	eval.EvaluatorReview = &domain.Review{
		ReviewerID: in.ActorID,
		Grade:      in.Grade,
		Comment:    in.Comment,
		ReviewedAt: now,
	}

	switch {
	case evaluator.Role().AtLeast(domain.RoleDirector):
		eval.DirectorReview = &domain.Review{
			ReviewerID: in.ActorID,
			Grade:      in.Grade,
			Comment:    in.Comment,
			ReviewedAt: now,
		}
		eval.Status = domain.StatusDirectorEvaluated
		if err := s.persist(ctx, eval, from); err != nil {
			return nil, err
		}
		s.notifier.FinalConfirmationNeeded(ctx, eval, evaluator.ID, subject.Name)

	case subject.IsSeniorStaff():
		eval.Status = domain.StatusManagerApproved
		if err := s.persist(ctx, eval, from); err != nil {
			return nil, err
		}
		s.notifier.DirectorEvaluationNeeded(ctx, eval, subject.Name)

	default:
		eval.Status = domain.StatusEvaluatorSubmitted
		if err := s.persist(ctx, eval, from); err != nil {
			return nil, err
		}
		s.notifier.ManagerReviewNeeded(ctx, eval, subject.Name)
	}

	s.logger.Info().
		Str("evaluation_id", eval.ID).
		Str("evaluator_id", in.ActorID).
		Str("status", string(eval.Status)).
		Msg("evaluator evaluation submitted")
	return eval, nil
}

// ApproveByManager records the manager's review and moves the evaluation to
// manager_approved.
func (s *WorkflowService) ApproveByManager(ctx context.Context, in ports.ReviewInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}
	if !eval.CanManagerApprove() {
		return nil, invalidState("approve by manager", eval.Status)
	}

	// The manager must exist in the directory; RBAC alone does not prove that.
	if _, err := s.users.FindByID(ctx, in.TenantID, in.ActorID); err != nil {
		return nil, fmt.Errorf("approve by manager: %w", err)
	}

	from := eval.Status
	eval.ManagerReview = &domain.Review{
		ReviewerID: in.ActorID,
		Grade:      in.Grade,
		Comment:    in.Comment,
		ReviewedAt: time.Now().UTC(),
	}
	eval.Status = domain.StatusManagerApproved
	if err := s.persist(ctx, eval, from); err != nil {
		return nil, err
	}

	s.notifier.DirectorEvaluationNeeded(ctx, eval, subject.Name)
	s.logger.Info().Str("evaluation_id", eval.ID).Str("manager_id", in.ActorID).Msg("evaluation approved by manager")
	return eval, nil
}

// RejectByManager rolls the evaluation back to self_submitted and clears the
// manager review. There is deliberately no status guard: a reject is an
// administrative override accepted from any state.
func (s *WorkflowService) RejectByManager(ctx context.Context, in ports.RejectInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}

	from := eval.Status
	eval.Status = domain.StatusSelfSubmitted
	eval.ManagerReview = nil
	if err := s.persist(ctx, eval, from); err != nil {
		return nil, err
	}

	s.notifier.Rejected(ctx, eval, subject.Name, in.Reason, false)
	s.logger.Info().Str("evaluation_id", eval.ID).Str("from", string(from)).Msg("evaluation rejected by manager")
	return eval, nil
}

// SubmitDirectorEvaluation records the director's review and moves the
// evaluation to director_evaluated, awaiting final confirmation.
func (s *WorkflowService) SubmitDirectorEvaluation(ctx context.Context, in ports.ReviewInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}
	if !eval.CanDirectorEvaluate() {
		return nil, invalidState("submit director evaluation", eval.Status)
	}

	director, err := s.users.FindByID(ctx, in.TenantID, in.ActorID)
	if err != nil {
		return nil, fmt.Errorf("submit director evaluation: %w", err)
	}

	from := eval.Status
	eval.DirectorReview = &domain.Review{
		ReviewerID: in.ActorID,
		Grade:      in.Grade,
		Comment:    in.Comment,
		ReviewedAt: time.Now().UTC(),
	}
	eval.Status = domain.StatusDirectorEvaluated
	if err := s.persist(ctx, eval, from); err != nil {
		return nil, err
	}

	s.notifier.FinalConfirmationNeeded(ctx, eval, director.ID, subject.Name)
	s.logger.Info().Str("evaluation_id", eval.ID).Str("director_id", in.ActorID).Msg("director evaluation submitted")
	return eval, nil
}

// RejectByDirector rolls the evaluation back. The landing state depends on
// the subject's seniority, because the manager stage never ran for a senior
// subject and there is nothing to return to:
//
//   - senior subject: back to self_submitted, evaluator and director reviews
//     cleared, the evaluator asked to re-evaluate.
//   - otherwise: back to evaluator_submitted, manager and director reviews
//     cleared, the department's managers asked to review again.
//
// Like RejectByManager, there is no status guard.
func (s *WorkflowService) RejectByDirector(ctx context.Context, in ports.RejectInput) (*domain.Evaluation, error) {
	eval, subject, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}

	from := eval.Status
	if subject.IsSeniorStaff() {
		eval.Status = domain.StatusSelfSubmitted
		eval.DirectorReview = nil
		eval.EvaluatorReview = nil
		if err := s.persist(ctx, eval, from); err != nil {
			return nil, err
		}
		s.notifier.Rejected(ctx, eval, subject.Name, in.Reason, true)
	} else {
		eval.Status = domain.StatusEvaluatorSubmitted
		eval.DirectorReview = nil
		eval.ManagerReview = nil
		if err := s.persist(ctx, eval, from); err != nil {
			return nil, err
		}
		s.notifier.ManagerReviewNeeded(ctx, eval, subject.Name)
	}

	s.logger.Info().Str("evaluation_id", eval.ID).Str("from", string(from)).Str("to", string(eval.Status)).Msg("evaluation rejected by director")
	return eval, nil
}

// FinalizeEvaluation confirms a director-evaluated evaluation, stamping
// FinalizedAt exactly once. A second call fails the guard with InvalidState.
func (s *WorkflowService) FinalizeEvaluation(ctx context.Context, in ports.FinalizeInput) (*domain.Evaluation, error) {
	eval, _, err := s.load(ctx, in.TenantID, in.EvaluationID)
	if err != nil {
		return nil, err
	}
	if !eval.CanFinalize() {
		return nil, invalidState("finalize evaluation", eval.Status)
	}

	now := time.Now().UTC()
	from := eval.Status
	eval.FinalizedAt = &now
	eval.Status = domain.StatusFinalized
	if err := s.persist(ctx, eval, from); err != nil {
		return nil, err
	}

	s.notifier.Finalized(ctx, eval)
	s.logger.Info().Str("evaluation_id", eval.ID).Msg("evaluation finalized")
	return eval, nil
}

// load fetches the aggregate and its subject. Every operation needs both:
// the subject's seniority drives routing and their name appears in
// notification messages.
func (s *WorkflowService) load(ctx context.Context, tenantID, evaluationID string) (*domain.Evaluation, *domain.User, error) {
	eval, err := s.evals.FindByID(ctx, tenantID, evaluationID)
	if err != nil {
		return nil, nil, fmt.Errorf("load evaluation: %w", err)
	}
	subject, err := s.users.FindByID(ctx, tenantID, eval.SubjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("load evaluation subject: %w", err)
	}
	return eval, subject, nil
}

func (s *WorkflowService) persist(ctx context.Context, eval *domain.Evaluation, from domain.EvaluationStatus) error {
	eval.UpdatedAt = time.Now().UTC()
	if err := s.evals.Update(ctx, eval, from); err != nil {
		s.logger.Error().Err(err).Str("evaluation_id", eval.ID).Msg("failed to persist evaluation")
		return fmt.Errorf("persist evaluation: %w", err)
	}
	return nil
}

func invalidState(op string, current domain.EvaluationStatus) error {
	return fmt.Errorf("%s: %w (current status %s)", op, domain.ErrInvalidState, current)
}
