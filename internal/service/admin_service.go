package service

import (
	"context"

	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// Stats are the aggregate numbers shown on the admin surface.
type Stats struct {
	TotalAttempts int64 `json:"totalAttempts"`
}

// Report is the per-identity admin view: the stored result joined
// with the latest feedback.
type Report struct {
	Email      string          `json:"email"`
	Evaluation string          `json:"evaluation,omitempty"`
	Scores     []int           `json:"scores,omitempty"`
	Answers    model.AnswerMap `json:"answers"`
	Rating     int             `json:"rating,omitempty"`
	Feedback   string          `json:"feedback,omitempty"`
}

// AdminService backs the privileged read surface. Capability checks
// happen in the transport middleware before any of this runs.
type AdminService struct {
	resultRepo repository.ResultRepo
	feedback   *FeedbackService
}

// NewAdminService creates a new admin service.
func NewAdminService(resultRepo repository.ResultRepo, feedback *FeedbackService) *AdminService {
	return &AdminService{
		resultRepo: resultRepo,
		feedback:   feedback,
	}
}

// Stats reports the number of stored results. Repeat submissions by
// the same identity overwrite, so this counts identities with a
// result, not raw submissions.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.resultRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalAttempts: total}, nil
}

// Report joins the stored result for email with their latest
// feedback. ErrResultNotFound when no submission exists.
func (s *AdminService) Report(ctx context.Context, email string) (*Report, error) {
	result, err := s.resultRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}

	report := &Report{
		Email:      result.Email,
		Evaluation: result.Evaluation,
		Scores:     result.Scores,
		Answers:    result.Answers,
	}
	if fb, err := s.feedback.LatestByEmail(ctx, email); err == nil && fb != nil {
		report.Rating = fb.Rating
		report.Feedback = fb.Text
	}
	return report, nil
}
