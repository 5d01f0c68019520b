package ports

import (
	"context"
	"time"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

// UserRepository is the staff directory. All lookups except
// FindActiveByEmail (used before a tenant is resolved) are tenant-scoped
// and only return active users.
type UserRepository interface {
	FindByID(ctx context.Context, tenantID, id string) (*domain.User, error)

	// FindActiveByEmail resolves login credentials across tenants; emails are
	// unique per tenant but logins carry no tenant yet.
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)

	UpdateLastLogin(ctx context.Context, tenantID, id string, at time.Time) error

	// FindEvaluatorCandidates returns active users of a department whose
	// position or personal override grants the evaluate capability.
	FindEvaluatorCandidates(ctx context.Context, tenantID, departmentID string) ([]*domain.User, error)

	// FindDirectorsAndAdmins returns active users holding director or admin rank.
	FindDirectorsAndAdmins(ctx context.Context, tenantID string) ([]*domain.User, error)
}
