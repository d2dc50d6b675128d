package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindprofile/internal/model"
)

// FeedbackRepo handles MongoDB operations for the append-only
// feedback log.
type FeedbackRepo interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetLatestByEmail(ctx context.Context, email string) (*model.Feedback, error)
}

type feedbackRepo struct {
	collection *mongo.Collection
}

// NewFeedbackRepo creates a new feedback repository.
func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{
		collection: db.Collection("feedback"),
	}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = primitive.NewObjectID().Hex()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, feedback)
	return err
}

func (r *feedbackRepo) GetLatestByEmail(ctx context.Context, email string) (*model.Feedback, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var feedback model.Feedback
	err := r.collection.FindOne(ctx, bson.M{"email": email}, opts).Decode(&feedback)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
