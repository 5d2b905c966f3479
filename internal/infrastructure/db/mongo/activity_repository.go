package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// Insert appends an entry to the audit trail.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return domain.Collaborator("insert activity", err)
	}
	return nil
}

// Recent returns the newest limit entries.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.Collaborator("list activity", err)
	}

	out := make([]domain.Activity, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, domain.Collaborator("decode activity", err)
	}
	return out, nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
