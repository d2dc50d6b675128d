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

// ResultRepo handles MongoDB operations for assessment results. One
// document per identity: UpsertAnswers replaces it wholesale (phase 1),
// AttachEvaluation updates only the evaluation fields (phase 2), so the
// answers stay durable even when the evaluation step fails.
type ResultRepo interface {
	UpsertAnswers(ctx context.Context, email string, answers model.AnswerMap) (*model.Result, error)
	AttachEvaluation(ctx context.Context, email string, eval *model.Evaluation) error
	GetByEmail(ctx context.Context, email string) (*model.Result, error)
	CountAll(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository.
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

func (r *resultRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertAnswers creates or fully replaces the result for email. Any
// evaluation from a prior submission is cleared.
func (r *resultRepo) UpsertAnswers(ctx context.Context, email string, answers model.AnswerMap) (*model.Result, error) {
	result := &model.Result{
		Email:     email,
		Answers:   answers,
		CreatedAt: time.Now(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"email":     result.Email,
			"answers":   result.Answers,
			"createdAt": result.CreatedAt,
		},
		"$unset":       bson.M{"evaluation": "", "scores": ""},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID().Hex()},
	}, opts)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AttachEvaluation sets only the evaluation fields of an existing
// result. Answers and creation time are left untouched.
func (r *resultRepo) AttachEvaluation(ctx context.Context, email string, eval *model.Evaluation) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"evaluation": eval.Text,
		"scores":     eval.Scores,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *resultRepo) GetByEmail(ctx context.Context, email string) (*model.Result, error) {
	var result model.Result
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
