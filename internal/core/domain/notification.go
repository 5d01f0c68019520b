package domain

import "time"

// Notification type tags emitted by the workflow.
const (
	NotifySelfSubmitted     = "self_submitted"
	NotifyEvaluatorComplete = "evaluator_completed"
	NotifyManagerApproved   = "manager_approved"
	NotifyDirectorEvaluated = "director_evaluated"
	NotifyRejected          = "evaluation_rejected"
	NotifyFinalized         = "evaluation_finalized"
)

// Notification is a message addressed to one user, persisted for in-app
// delivery. Delivery and retention are the notification store's concern.
type Notification struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	TenantID    string     `json:"tenant_id" bson:"tenant_id"`
	RecipientID string     `json:"recipient_id" bson:"recipient_id"`
	Type        string     `json:"type" bson:"type"`
	Title       string     `json:"title" bson:"title"`
	Message     string     `json:"message" bson:"message"`
	Link        string     `json:"link,omitempty" bson:"link,omitempty"`
	IsRead      bool       `json:"is_read" bson:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// FiscalYear is the evaluation calendar entry referenced by an evaluation.
type FiscalYear struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TenantID  string    `json:"tenant_id" bson:"tenant_id"`
	Year      int       `json:"year" bson:"year"`
	IsCurrent bool      `json:"is_current" bson:"is_current"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
