package domain

import (
	"errors"
	"time"
)

// EvaluationStatus represents the lifecycle state of an evaluation.
type EvaluationStatus string

const (
	StatusNotStarted         EvaluationStatus = "not_started"
	StatusSelfSubmitted      EvaluationStatus = "self_submitted"
	StatusEvaluatorSubmitted EvaluationStatus = "evaluator_submitted"
	StatusManagerApproved    EvaluationStatus = "manager_approved"
	StatusDirectorEvaluated  EvaluationStatus = "director_evaluated"
	StatusFinalized          EvaluationStatus = "finalized"
)

// validTransitions defines the allowed forward edges of the state machine.
// SELF_SUBMITTED fans out because the evaluator submission can skip tiers:
// straight to manager_approved when the subject is senior staff, straight to
// director_evaluated when the evaluator is a director or admin.
// Rejections are administrative rollbacks and deliberately bypass this table.
var validTransitions = map[EvaluationStatus][]EvaluationStatus{
	StatusNotStarted:         {StatusSelfSubmitted},
	StatusSelfSubmitted:      {StatusEvaluatorSubmitted, StatusManagerApproved, StatusDirectorEvaluated},
	StatusEvaluatorSubmitted: {StatusManagerApproved},
	StatusManagerApproved:    {StatusDirectorEvaluated},
	StatusDirectorEvaluated:  {StatusFinalized},
}

var ErrEvaluationNotFound = errors.New("evaluation not found")
var ErrUserNotFound = errors.New("user not found")
var ErrFiscalYearNotFound = errors.New("fiscal year not found")
var ErrInvalidState = errors.New("operation not allowed in current status")
var ErrForbidden = errors.New("access forbidden")
var ErrConflict = errors.New("evaluation modified concurrently")
var ErrInvalidCredentials = errors.New("invalid credentials")

// CanTransitionTo reports whether a forward transition from s to next is valid.
func (s EvaluationStatus) CanTransitionTo(next EvaluationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EvaluationPeriod identifies which half of the fiscal year an evaluation covers.
type EvaluationPeriod string

const (
	PeriodSummer EvaluationPeriod = "SUMMER"
	PeriodWinter EvaluationPeriod = "WINTER"
)

// Label returns the human-readable period name used in notifications.
func (p EvaluationPeriod) Label() string {
	if p == PeriodWinter {
		return "winter review"
	}
	return "summer review"
}

// Review is one approval tier's record on an evaluation: who reviewed,
// the grade and comment given, and when. The four fields are written and
// cleared together; a nil *Review means the tier has not (or no longer)
// reviewed.
type Review struct {
	ReviewerID string    `json:"reviewer_id" bson:"reviewer_id"`
	Grade      string    `json:"grade" bson:"grade"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	ReviewedAt time.Time `json:"reviewed_at" bson:"reviewed_at"`
}

// Evaluation is the core aggregate root: one evaluation cycle for one
// employee, one fiscal year, one period. The tuple (tenant, subject,
// fiscal year, period) is unique per tenant.
type Evaluation struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	TenantID     string           `json:"tenant_id" bson:"tenant_id"`
	SubjectID    string           `json:"subject_id" bson:"subject_id"`
	FiscalYearID string           `json:"fiscal_year_id" bson:"fiscal_year_id"`
	Period       EvaluationPeriod `json:"period" bson:"period"`

	// Department and position are snapshotted at creation so notification
	// routing does not depend on later organizational changes.
	DepartmentID string `json:"department_id,omitempty" bson:"department_id,omitempty"`
	PositionID   string `json:"position_id,omitempty" bson:"position_id,omitempty"`

	Status EvaluationStatus `json:"status" bson:"status"`

	// EvaluatorID is the standing first-line assessor assignment. It survives
	// rollbacks; only the review itself is cleared.
	EvaluatorID     string  `json:"evaluator_id,omitempty" bson:"evaluator_id,omitempty"`
	EvaluatorReview *Review `json:"evaluator_review,omitempty" bson:"evaluator_review,omitempty"`
	ManagerReview   *Review `json:"manager_review,omitempty" bson:"manager_review,omitempty"`
	DirectorReview  *Review `json:"director_review,omitempty" bson:"director_review,omitempty"`

	FinalizedAt *time.Time `json:"finalized_at,omitempty" bson:"finalized_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// ── Guard predicates ─────────────────────────────────────────────────────────
// Pure checks over the current status; each forward operation has exactly one.

func (e *Evaluation) CanSelfEvaluate() bool {
	return e.Status == StatusNotStarted
}

func (e *Evaluation) CanEvaluatorSubmit() bool {
	return e.Status == StatusSelfSubmitted
}

func (e *Evaluation) CanManagerApprove() bool {
	return e.Status == StatusEvaluatorSubmitted
}

func (e *Evaluation) CanDirectorEvaluate() bool {
	return e.Status == StatusManagerApproved
}

func (e *Evaluation) CanFinalize() bool {
	return e.Status == StatusDirectorEvaluated
}

// IsOwnedBy reports whether userID is the evaluation's subject.
func (e *Evaluation) IsOwnedBy(userID string) bool {
	return e.SubjectID == userID
}
