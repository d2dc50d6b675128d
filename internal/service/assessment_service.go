package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindprofile/internal/cache"
	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// AssessmentService runs the submission pipeline: resolve ordinal
// answers against a catalog snapshot, persist them, evaluate, attach.
// Answers are durable before the provider is ever called, so a
// failed or timed-out evaluation never discards a submission.
type AssessmentService struct {
	catalog       *CatalogService
	resultRepo    repository.ResultRepo
	snapshotCache cache.SnapshotCache
	evaluator     Evaluator
	log           *zap.SugaredLogger
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(catalog *CatalogService, resultRepo repository.ResultRepo, snapshotCache cache.SnapshotCache, evaluator Evaluator, log *zap.SugaredLogger) *AssessmentService {
	return &AssessmentService{
		catalog:       catalog,
		resultRepo:    resultRepo,
		snapshotCache: snapshotCache,
		evaluator:     evaluator,
		log:           log,
	}
}

// Render takes a point-in-time catalog snapshot, caches it under a
// fresh id and returns it. Submitting with the returned id resolves
// against exactly the questions rendered here, even if the catalog
// changes in between.
func (s *AssessmentService) Render(ctx context.Context) (*model.Snapshot, error) {
	questions, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		ID:        uuid.New().String(),
		Questions: questions,
		CreatedAt: time.Now(),
	}
	if err := s.snapshotCache.Set(ctx, snapshot); err != nil {
		// Rendering still works; submitting without an id falls
		// back to the live catalog.
		s.log.Warnw("snapshot cache write failed", "snapshotId", snapshot.ID, "error", err)
	}
	return snapshot, nil
}

// Resolve converts ordinal-keyed raw answers into a question-text-keyed
// map using the snapshot. Keys whose index has no catalog entry are
// silently dropped; duplicate indices overwrite. An empty resolved map
// fails ErrEmptySubmission.
func Resolve(raw model.AnswerSet, snapshot *model.Snapshot) (model.AnswerMap, error) {
	answers := make(model.AnswerMap)
	for key, value := range raw {
		suffix, ok := strings.CutPrefix(key, "q")
		if !ok {
			continue
		}
		index, err := strconv.Atoi(suffix)
		if err != nil || index < 0 || index >= len(snapshot.Questions) {
			continue
		}
		answers[snapshot.Questions[index].Text] = value
	}

	if len(answers) == 0 {
		return nil, ErrEmptySubmission
	}
	return answers, nil
}

// Submit runs the two-phase pipeline for one identity. The returned
// evaluation is always well-formed; an error means nothing usable was
// stored (resolution failed) or phase-1 persistence itself failed.
func (s *AssessmentService) Submit(ctx context.Context, email string, raw model.AnswerSet, snapshotID string) (*model.Evaluation, error) {
	snapshot, err := s.loadSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	answers, err := Resolve(raw, snapshot)
	if err != nil {
		return nil, err
	}

	// Phase 1: the answers must be durable before any external call.
	if _, err := s.resultRepo.UpsertAnswers(ctx, email, answers); err != nil {
		return nil, err
	}
	s.log.Infow("answers stored", "email", email, "count", len(answers))

	// Single bounded attempt; never fails.
	eval := s.evaluator.Evaluate(ctx, answers)

	// Phase 2: attach. A failure here must not lose the submission;
	// the answers are already stored, so log and return the
	// evaluation anyway.
	if err := s.resultRepo.AttachEvaluation(ctx, email, eval); err != nil {
		s.log.Errorw("evaluation attach failed", "email", email, "error", err)
	}
	return eval, nil
}

// GetResult returns the stored result for an identity, or nil.
func (s *AssessmentService) GetResult(ctx context.Context, email string) (*model.Result, error) {
	return s.resultRepo.GetByEmail(ctx, email)
}

// loadSnapshot fetches the cached snapshot for id. A missing or
// expired id is rejected so answers cannot silently attach to a
// catalog the visitor never saw. An empty id falls back to the
// current catalog.
func (s *AssessmentService) loadSnapshot(ctx context.Context, snapshotID string) (*model.Snapshot, error) {
	if snapshotID == "" {
		questions, err := s.catalog.List(ctx)
		if err != nil {
			return nil, err
		}
		return &model.Snapshot{Questions: questions}, nil
	}

	snapshot, err := s.snapshotCache.Get(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrStaleSnapshot
	}
	return snapshot, nil
}
