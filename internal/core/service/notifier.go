package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// NotificationDispatcher hands constructed notifications off for delivery.
// Dispatch must never block the calling transition; delivery is best-effort
// and happens after the evaluation's own write has committed.
type NotificationDispatcher interface {
	Dispatch(n *domain.Notification)
}

// Notifier resolves the recipients for each workflow transition and builds
// the notification records. It is stateless; every directory lookup is
// scoped by the evaluation's tenant. Lookup failures are logged and the
// notification dropped; a transition is never rolled back over delivery.
type Notifier struct {
	users      ports.UserRepository
	years      ports.FiscalYearRepository
	dispatcher NotificationDispatcher
	log        zerolog.Logger
}

func NewNotifier(users ports.UserRepository, years ports.FiscalYearRepository, dispatcher NotificationDispatcher, log zerolog.Logger) *Notifier {
	return &Notifier{users: users, years: years, dispatcher: dispatcher, log: log}
}

// SelfSubmitted tells the assigned evaluator that the subject's
// self-evaluation is ready for review.
func (n *Notifier) SelfSubmitted(ctx context.Context, eval *domain.Evaluation, subjectName string) {
	if eval.EvaluatorID == "" {
		return
	}
	n.send(eval, eval.EvaluatorID, domain.NotifySelfSubmitted,
		"Self-evaluation submitted",
		fmt.Sprintf("%s submitted their self-evaluation.", subjectName),
		"/evaluator/evaluate/"+eval.ID)
}

// FinalConfirmationNeeded tells the director of record that the evaluation
// awaits final confirmation.
func (n *Notifier) FinalConfirmationNeeded(ctx context.Context, eval *domain.Evaluation, directorID, subjectName string) {
	n.send(eval, directorID, domain.NotifyDirectorEvaluated,
		"Final confirmation needed",
		fmt.Sprintf("Please review and confirm %s's evaluation.", subjectName),
		"/director/finalize/"+eval.ID)
}

// DirectorEvaluationNeeded fans out to every director and admin of the
// tenant after an evaluation reaches manager approval.
func (n *Notifier) DirectorEvaluationNeeded(ctx context.Context, eval *domain.Evaluation, subjectName string) {
	directors, err := n.users.FindDirectorsAndAdmins(ctx, eval.TenantID)
	if err != nil {
		n.log.Warn().Err(err).Str("evaluation_id", eval.ID).Msg("director lookup failed, notification dropped")
		return
	}
	for _, d := range directors {
		n.send(eval, d.ID, domain.NotifyManagerApproved,
			"Director evaluation needed",
			fmt.Sprintf("%s's evaluation has been approved.", subjectName),
			"/director/evaluate/"+eval.ID)
	}
}

// ManagerReviewNeeded fans out to every manager-role user of the subject's
// department after the evaluator submits.
func (n *Notifier) ManagerReviewNeeded(ctx context.Context, eval *domain.Evaluation, subjectName string) {
	if eval.DepartmentID == "" {
		return
	}
	candidates, err := n.users.FindEvaluatorCandidates(ctx, eval.TenantID, eval.DepartmentID)
	if err != nil {
		n.log.Warn().Err(err).Str("evaluation_id", eval.ID).Msg("manager lookup failed, notification dropped")
		return
	}
	for _, c := range candidates {
		if !c.IsManager() {
			continue
		}
		n.send(eval, c.ID, domain.NotifyEvaluatorComplete,
			"Evaluation completed",
			fmt.Sprintf("%s's evaluation has been completed.", subjectName),
			"/manager/review/"+eval.ID)
	}
}

// Rejected tells the assigned evaluator their evaluation was sent back.
// When reevaluate is set the wording asks for a fresh evaluation (the
// evaluator's own review was cleared, not just a later tier's).
func (n *Notifier) Rejected(ctx context.Context, eval *domain.Evaluation, subjectName, reason string, reevaluate bool) {
	if eval.EvaluatorID == "" {
		return
	}
	msg := fmt.Sprintf("%s's evaluation was sent back.", subjectName)
	if reevaluate {
		msg = fmt.Sprintf("Please re-evaluate %s.", subjectName)
	}
	n.send(eval, eval.EvaluatorID, domain.NotifyRejected,
		"Evaluation sent back",
		msg+appendReason(reason),
		"/evaluator/evaluate/"+eval.ID)
}

// Finalized tells the subject their evaluation is confirmed.
func (n *Notifier) Finalized(ctx context.Context, eval *domain.Evaluation) {
	period := eval.Period.Label()
	if fy, err := n.years.FindByID(ctx, eval.TenantID, eval.FiscalYearID); err == nil {
		period = fmt.Sprintf("FY%d %s", fy.Year, period)
	} else {
		n.log.Warn().Err(err).Str("evaluation_id", eval.ID).Msg("fiscal year lookup failed, using period label only")
	}
	n.send(eval, eval.SubjectID, domain.NotifyFinalized,
		"Evaluation finalized",
		fmt.Sprintf("Your %s has been finalized.", period),
		"/my-evaluations")
}

func (n *Notifier) send(eval *domain.Evaluation, recipientID, typ, title, message, link string) {
	n.dispatcher.Dispatch(&domain.Notification{
		TenantID:    eval.TenantID,
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Link:        link,
		CreatedAt:   time.Now().UTC(),
	})
}

func appendReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return ""
	}
	return " Reason: " + reason
}
