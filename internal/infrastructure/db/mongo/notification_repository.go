package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

const collectionNotifications = "notifications"

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

// Save inserts a notification document, generating an id when none is set.
func (r *NotificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.col.InsertOne(ctx, n)
	return err
}

const collectionFiscalYears = "fiscal_years"

type FiscalYearRepository struct {
	col *mongo.Collection
}

func NewFiscalYearRepository(db *mongo.Database) *FiscalYearRepository {
	return &FiscalYearRepository{col: db.Collection(collectionFiscalYears)}
}

func (r *FiscalYearRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.FiscalYear, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var fy domain.FiscalYear
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&fy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFiscalYearNotFound
		}
		return nil, err
	}
	return &fy, nil
}
