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

const collectionUsers = "users"

// UserRepository is the Mongo-backed staff directory. The position document
// is embedded on the user so role classification needs no join.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindActiveByEmail resolves login credentials. No tenant filter: the login
// request carries no tenant yet, and emails are unique per tenant.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"email": email, "is_active": true}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tenantID, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "tenant_id": tenantID},
		bson.M{"$set": bson.M{"last_login_at": at.UTC(), "updated_at": at.UTC()}})
	return err
}

// FindEvaluatorCandidates returns active department members whose position
// or personal override grants the evaluate capability.
func (r *UserRepository) FindEvaluatorCandidates(ctx context.Context, tenantID, departmentID string) ([]*domain.User, error) {
	filter := bson.M{
		"tenant_id":     tenantID,
		"department_id": departmentID,
		"is_active":     true,
		"$or": []bson.M{
			{"position.can_evaluate": true},
			{"can_evaluate": true},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "position.sort_order", Value: 1}, {Key: "name", Value: 1}})
	return r.list(ctx, filter, opts)
}

// FindDirectorsAndAdmins returns active users holding director or admin rank.
func (r *UserRepository) FindDirectorsAndAdmins(ctx context.Context, tenantID string) ([]*domain.User, error) {
	filter := bson.M{
		"tenant_id":     tenantID,
		"is_active":     true,
		"position.rank": bson.M{"$in": []int{domain.RankAdmin, domain.RankDirector}},
	}
	return r.list(ctx, filter, nil)
}

func (r *UserRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, filter, opts)
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureIndexes creates the necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "department_id", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "position.rank", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
