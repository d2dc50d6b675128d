package service

import (
	"context"

	"go.uber.org/zap"

	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// FeedbackService appends visitor feedback to the log.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepo
	log          *zap.SugaredLogger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(feedbackRepo repository.FeedbackRepo, log *zap.SugaredLogger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		log:          log,
	}
}

// Add appends one feedback entry for email.
func (s *FeedbackService) Add(ctx context.Context, email string, rating int, text string) error {
	if text == "" && rating == 0 {
		return ErrMissingFields
	}
	return s.feedbackRepo.Create(ctx, &model.Feedback{
		Email:  email,
		Rating: rating,
		Text:   text,
	})
}

// LatestByEmail returns the most recent feedback for email, or nil.
func (s *FeedbackService) LatestByEmail(ctx context.Context, email string) (*model.Feedback, error) {
	return s.feedbackRepo.GetLatestByEmail(ctx, email)
}
