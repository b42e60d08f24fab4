package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
)

type InterviewRepo struct {
	interviews *mongo.Collection
	comments   *mongo.Collection
}

func NewInterviewRepo(c *Client) (*InterviewRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	interviews := db.Collection("interviews")
	comments := db.Collection("comments")
	_, _ = interviews.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "candidateId", Value: 1}},
	})
	_, _ = interviews.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "streamCallId", Value: 1}},
	})
	_, _ = comments.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "interviewId", Value: 1}},
	})
	return &InterviewRepo{interviews: interviews, comments: comments}, nil
}

func (r *InterviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	_, err := r.interviews.InsertOne(ctx, iv)
	return err
}

func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var iv models.Interview
	err := r.interviews.FindOne(ctx, bson.M{"id": id}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) GetByStreamCallID(ctx context.Context, callID string) (*models.Interview, error) {
	var iv models.Interview
	err := r.interviews.FindOne(ctx, bson.M{"streamCallId": callID}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) List(ctx context.Context) ([]models.Interview, error) {
	return r.find(ctx, bson.M{})
}

func (r *InterviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]models.Interview, error) {
	return r.find(ctx, bson.M{"candidateId": candidateID})
}

// ListByStatus feeds the sweeper; only records in the given status whose
// start time has already passed are returned.
func (r *InterviewRepo) ListByStatusDue(ctx context.Context, status string, dueBefore int64) ([]models.Interview, error) {
	return r.find(ctx, bson.M{"status": status, "startTime": bson.M{"$lte": dueBefore}})
}

func (r *InterviewRepo) find(ctx context.Context, filter bson.M) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cur, err := r.interviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InterviewRepo) PatchInterview(ctx context.Context, id string, fields map[string]interface{}) error {
	res, err := r.interviews.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt == 0 {
		comment.CreatedAt = time.Now().UnixMilli()
	}
	_, err := r.comments.InsertOne(ctx, comment)
	return err
}

func (r *InterviewRepo) CommentsByInterview(ctx context.Context, interviewID string) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.comments.Find(ctx, bson.M{"interviewId": interviewID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
