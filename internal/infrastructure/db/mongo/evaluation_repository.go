package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

const collectionEvaluations = "evaluations"

type EvaluationRepository struct {
	col *mongo.Collection
}

func NewEvaluationRepository(db *mongo.Database) *EvaluationRepository {
	return &EvaluationRepository{col: db.Collection(collectionEvaluations)}
}

// FindByID retrieves an evaluation by id within a tenant.
func (r *EvaluationRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Evaluation
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEvaluationNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Update replaces the evaluation document, conditional on the stored status
// still matching fromStatus. A zero match on a document we just loaded means
// a concurrent transition won the race.
func (r *EvaluationRepository) Update(ctx context.Context, e *domain.Evaluation, fromStatus domain.EvaluationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       e.ID,
		"tenant_id": e.TenantID,
		"status":    string(fromStatus),
	}
	res, err := r.col.ReplaceOne(ctx, filter, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListBySubject returns the subject's evaluations, newest first.
func (r *EvaluationRepository) ListBySubject(ctx context.Context, tenantID, subjectID string) ([]*domain.Evaluation, error) {
	filter := bson.M{"tenant_id": tenantID, "subject_id": subjectID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, filter, opts)
}

// ListByEvaluatorAndStatus returns the evaluator's queue in the given status.
func (r *EvaluationRepository) ListByEvaluatorAndStatus(ctx context.Context, tenantID, evaluatorID string, status domain.EvaluationStatus) ([]*domain.Evaluation, error) {
	filter := bson.M{
		"tenant_id":    tenantID,
		"evaluator_id": evaluatorID,
		"status":       string(status),
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}})
	return r.list(ctx, filter, opts)
}

func (r *EvaluationRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var evals []*domain.Evaluation
	if err := cur.All(ctx, &evals); err != nil {
		return nil, err
	}
	return evals, nil
}

func (r *EvaluationRepository) CountByEvaluatorAndStatus(ctx context.Context, tenantID, evaluatorID string, status domain.EvaluationStatus) (int64, error) {
	return r.count(ctx, bson.M{
		"tenant_id":    tenantID,
		"evaluator_id": evaluatorID,
		"status":       string(status),
	})
}

func (r *EvaluationRepository) CountByDepartmentAndStatus(ctx context.Context, tenantID, departmentID string, status domain.EvaluationStatus) (int64, error) {
	return r.count(ctx, bson.M{
		"tenant_id":     tenantID,
		"department_id": departmentID,
		"status":        string(status),
	})
}

func (r *EvaluationRepository) CountByStatus(ctx context.Context, tenantID string, status domain.EvaluationStatus) (int64, error) {
	return r.count(ctx, bson.M{"tenant_id": tenantID, "status": string(status)})
}

func (r *EvaluationRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, filter)
}

// EnsureIndexes creates the necessary indexes on the evaluations collection.
// The compound unique index enforces one evaluation per subject, fiscal year
// and period within a tenant.
func (r *EvaluationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenant_id", Value: 1},
				{Key: "subject_id", Value: 1},
				{Key: "fiscal_year_id", Value: 1},
				{Key: "period", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "evaluator_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "department_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
