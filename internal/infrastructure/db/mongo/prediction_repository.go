package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

const predictionsCollection = "predictions"

type PredictionRepository struct {
	coll *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{coll: db.Collection(predictionsCollection)}
}

type mongoPrediction struct {
	ID                    primitive.ObjectID           `bson:"_id,omitempty"`
	UserID                string                       `bson:"user_id"`
	Image                 string                       `bson:"image"`
	MacronutrientsPerGram domain.MacronutrientsPerGram `bson:"macronutrients_per_gram"`
	Metadata              domain.PredictionMetadata    `bson:"metadata"`
	CreatedAt             time.Time                    `bson:"created_at"`
	UpdatedAt             time.Time                    `bson:"updated_at"`
}

// Save inserts a history record. Records are immutable once created.
func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoPrediction{
		UserID:                p.UserID,
		Image:                 p.Image,
		MacronutrientsPerGram: p.MacronutrientsPerGram,
		Metadata:              p.Metadata,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert prediction: %w", err)
	}

	saved := *p
	saved.CreatedAt = now
	saved.UpdatedAt = now
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

// FindRecentByUser returns the user's most recent predictions, newest first.
func (r *PredictionRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find predictions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPrediction
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}

	out := make([]domain.Prediction, len(docs))
	for i, d := range docs {
		out[i] = domain.Prediction{
			ID:                    d.ID.Hex(),
			UserID:                d.UserID,
			Image:                 d.Image,
			MacronutrientsPerGram: d.MacronutrientsPerGram,
			Metadata:              d.Metadata,
			CreatedAt:             d.CreatedAt.UTC(),
			UpdatedAt:             d.UpdatedAt.UTC(),
		}
	}
	return out, nil
}

// EnsureIndexes creates the index backing the newest-first history query.
func (r *PredictionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
