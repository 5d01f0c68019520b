package ports

import (
	"context"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

// NotificationRepository persists notification records for in-app delivery.
type NotificationRepository interface {
	Save(ctx context.Context, n *domain.Notification) error
}

// FiscalYearRepository reads the evaluation calendar entries referenced by
// evaluations.
type FiscalYearRepository interface {
	FindByID(ctx context.Context, tenantID, id string) (*domain.FiscalYear, error)
}
