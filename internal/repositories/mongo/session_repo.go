package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
)

// SessionRepo persists code sessions, one document per sessionId.
type SessionRepo struct{ col *mongo.Collection }

// NewSessionRepo wraps the collection and ensures the point-lookup index on
// the session key.
func NewSessionRepo(c *Client) (*SessionRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	col := db.Collection("codeSessions")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}},
	})
	return &SessionRepo{col: col}, nil
}

func (r *SessionRepo) FindBySession(ctx context.Context, sessionID string) (*models.CodeSession, error) {
	var s models.CodeSession
	err := r.col.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Insert(ctx context.Context, session *models.CodeSession) error {
	_, err := r.col.InsertOne(ctx, session)
	return err
}

func (r *SessionRepo) Patch(ctx context.Context, sessionID string, fields map[string]interface{}) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"sessionId": sessionID}, bson.M{"$set": fields})
	return err
}
