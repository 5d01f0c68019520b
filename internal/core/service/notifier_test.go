package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

func newNotifierFixture() (*Notifier, *stubUserRepo, *stubFiscalYearRepo, *captureDispatcher) {
	users := newStubUserRepo()
	years := &stubFiscalYearRepo{byID: make(map[string]*domain.FiscalYear)}
	sent := &captureDispatcher{}
	return NewNotifier(users, years, sent, discardLogger), users, years, sent
}

func notifierEval() *domain.Evaluation {
	return &domain.Evaluation{
		ID:           "eval_9",
		TenantID:     testTenant,
		SubjectID:    "u_subject",
		FiscalYearID: "fy_9",
		Period:       domain.PeriodWinter,
		DepartmentID: "dept_9",
		EvaluatorID:  "u_evaluator",
	}
}

func TestNotifier_SelfSubmitted_NoEvaluatorAssigned(t *testing.T) {
	n, _, _, sent := newNotifierFixture()
	eval := notifierEval()
	eval.EvaluatorID = ""

	n.SelfSubmitted(context.Background(), eval, "Alice")
	if len(sent.sent) != 0 {
		t.Errorf("nothing to send without an assigned evaluator, got %d", len(sent.sent))
	}
}

func TestNotifier_ManagerReviewNeeded_NoDepartment(t *testing.T) {
	n, users, _, sent := newNotifierFixture()
	users.candidates = []*domain.User{rankedUser("u_m", "dept_9", domain.RankManager)}
	eval := notifierEval()
	eval.DepartmentID = ""

	n.ManagerReviewNeeded(context.Background(), eval, "Alice")
	if len(sent.sent) != 0 {
		t.Errorf("no department, no fan-out; got %d", len(sent.sent))
	}
}

func TestNotifier_ManagerReviewNeeded_OnlyManagersNotified(t *testing.T) {
	n, users, _, sent := newNotifierFixture()
	users.candidates = []*domain.User{
		rankedUser("u_m1", "dept_9", domain.RankManager),
		rankedUser("u_m2", "dept_9", domain.RankManager),
		rankedUser("u_peer", "dept_9", 4), // evaluator-capable, not a manager
	}

	n.ManagerReviewNeeded(context.Background(), notifierEval(), "Alice")
	if len(sent.sent) != 2 {
		t.Fatalf("expected 2 manager notifications, got %d", len(sent.sent))
	}
	for _, nn := range sent.sent {
		if nn.Type != domain.NotifyEvaluatorComplete {
			t.Errorf("type: got %q", nn.Type)
		}
	}
}

func TestNotifier_DirectorEvaluationNeeded_LookupFailure(t *testing.T) {
	n, users, _, sent := newNotifierFixture()
	users.lookupErr = errors.New("directory down")

	n.DirectorEvaluationNeeded(context.Background(), notifierEval(), "Alice")
	if len(sent.sent) != 0 {
		t.Errorf("lookup failure must drop the notification, got %d", len(sent.sent))
	}
}

func TestNotifier_Finalized_FallsBackToPeriodLabel(t *testing.T) {
	n, _, _, sent := newNotifierFixture()

	// No fiscal year seeded: message carries the bare period label.
	n.Finalized(context.Background(), notifierEval())
	if len(sent.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent.sent))
	}
	msg := sent.sent[0].Message
	if !strings.Contains(msg, "winter review") {
		t.Errorf("expected period label in message, got %q", msg)
	}
	if strings.Contains(msg, "FY") {
		t.Errorf("no fiscal year prefix without a calendar entry, got %q", msg)
	}
}

func TestNotifier_Finalized_NamesFiscalYear(t *testing.T) {
	n, _, years, sent := newNotifierFixture()
	years.byID["fy_9"] = &domain.FiscalYear{ID: "fy_9", TenantID: testTenant, Year: 2025}

	n.Finalized(context.Background(), notifierEval())
	if len(sent.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent.sent))
	}
	if !strings.Contains(sent.sent[0].Message, "FY2025 winter review") {
		t.Errorf("expected fiscal year and period, got %q", sent.sent[0].Message)
	}
	if sent.sent[0].RecipientID != "u_subject" {
		t.Errorf("recipient: want u_subject, got %q", sent.sent[0].RecipientID)
	}
}
