package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// ExecutionRepo is the append-only run history. Records are never updated or
// deleted; only the read side is bounded.
type ExecutionRepo struct{ col *mongo.Collection }

func NewExecutionRepo(c *Client) (*ExecutionRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	col := db.Collection("codeExecutions")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &ExecutionRepo{col: col}, nil
}

func (r *ExecutionRepo) Insert(ctx context.Context, exec *models.Execution) error {
	_, err := r.col.InsertOne(ctx, exec)
	return err
}

// RecentBySession returns at most limit records, newest first.
func (r *ExecutionRepo) RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.Execution, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Execution{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
