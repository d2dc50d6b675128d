package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// QuestionInput is one catalog entry as supplied by an administrator.
type QuestionInput struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// CatalogService manages the question catalog. Uniqueness of question
// text is enforced by the storage layer (unique index on the
// normalized text key), so concurrent adds of the same text cannot
// both succeed.
type CatalogService struct {
	questionRepo repository.QuestionRepo
	log          *zap.SugaredLogger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(questionRepo repository.QuestionRepo, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		questionRepo: questionRepo,
		log:          log,
	}
}

// List returns all live questions in stable order.
func (s *CatalogService) List(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.GetAll(ctx)
}

// Add inserts a new question. Duplicate text fails ErrDuplicateQuestion.
func (s *CatalogService) Add(ctx context.Context, input QuestionInput) (*model.Question, error) {
	if input.Text == "" || len(input.Options) == 0 {
		return nil, ErrMissingFields
	}

	question := &model.Question{
		Text:    input.Text,
		Options: input.Options,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateQuestion
		}
		return nil, err
	}

	s.log.Infow("question added", "id", question.ID)
	return question, nil
}

// Update rewrites an existing question's text and options.
func (s *CatalogService) Update(ctx context.Context, id string, input QuestionInput) error {
	if id == "" || input.Text == "" || len(input.Options) == 0 {
		return ErrMissingFields
	}

	question := &model.Question{
		ID:      id,
		Text:    input.Text,
		Options: input.Options,
	}
	err := s.questionRepo.Update(ctx, question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrQuestionNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateQuestion
	}
	return err
}

// Delete removes the given questions. Each deletion is independent: a
// failure on one id does not roll back the ones already deleted.
// Returns the number of successful deletions.
func (s *CatalogService) Delete(ctx context.Context, ids []string) (int, error) {
	deleted := 0
	var lastErr error
	for _, id := range ids {
		if err := s.questionRepo.Delete(ctx, id); err != nil {
			s.log.Warnw("question delete failed", "id", id, "error", err)
			lastErr = err
			continue
		}
		deleted++
	}
	return deleted, lastErr
}

// Import bulk-loads questions, silently skipping entries whose text
// already exists. Safe to re-run with overlapping input.
func (s *CatalogService) Import(ctx context.Context, entries []QuestionInput) (int, error) {
	imported := 0
	for _, entry := range entries {
		if entry.Text == "" || len(entry.Options) == 0 {
			continue
		}
		question := &model.Question{
			Text:    entry.Text,
			Options: entry.Options,
		}
		if err := s.questionRepo.Create(ctx, question); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return imported, err
		}
		imported++
	}

	s.log.Infow("catalog import finished", "imported", imported, "total", len(entries))
	return imported, nil
}
