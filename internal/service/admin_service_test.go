package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindprofile/internal/model"
)

type fakeFeedbackRepo struct {
	entries []model.Feedback
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *model.Feedback) error {
	r.entries = append(r.entries, *f)
	return nil
}

func (r *fakeFeedbackRepo) GetLatestByEmail(_ context.Context, email string) (*model.Feedback, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Email == email {
			copied := r.entries[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func newTestAdmin(t *testing.T) (*AdminService, *fakeResultRepo, *FeedbackService) {
	t.Helper()
	results := newFakeResultRepo()
	feedback := NewFeedbackService(&fakeFeedbackRepo{}, zap.NewNop().Sugar())
	return NewAdminService(results, feedback), results, feedback
}

func TestStatsCountsStoredResults(t *testing.T) {
	admin, results, _ := newTestAdmin(t)
	ctx := context.Background()

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalAttempts)

	_, err = results.UpsertAnswers(ctx, "a@b.c", model.AnswerMap{"Q1": "Agree"})
	require.NoError(t, err)
	_, err = results.UpsertAnswers(ctx, "b@b.c", model.AnswerMap{"Q1": "Agree"})
	require.NoError(t, err)
	// A repeat submission overwrites, so the count stays at two.
	_, err = results.UpsertAnswers(ctx, "a@b.c", model.AnswerMap{"Q1": "Disagree"})
	require.NoError(t, err)

	stats, err = admin.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalAttempts)
}

func TestReportJoinsResultAndFeedback(t *testing.T) {
	admin, results, feedback := newTestAdmin(t)
	ctx := context.Background()

	_, err := admin.Report(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrResultNotFound)

	_, err = results.UpsertAnswers(ctx, "a@b.c", model.AnswerMap{"Q1": "Agree"})
	require.NoError(t, err)
	require.NoError(t, results.AttachEvaluation(ctx, "a@b.c", &model.Evaluation{Text: "Calm profile.", Scores: []int{50, 50, 50, 50, 50}}))
	require.NoError(t, feedback.Add(ctx, "a@b.c", 4, "Interesting test"))

	report, err := admin.Report(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", report.Email)
	assert.Equal(t, "Calm profile.", report.Evaluation)
	assert.Equal(t, model.AnswerMap{"Q1": "Agree"}, report.Answers)
	assert.Equal(t, 4, report.Rating)
	assert.Equal(t, "Interesting test", report.Feedback)
}

func TestUserDirectoryLifecycle(t *testing.T) {
	users := NewUserService(newFakeUserRepo(), zap.NewNop().Sugar())
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@x.y", "pw", model.RoleUser)
	require.NoError(t, err)
	assert.False(t, created.IsAdmin())
	assert.NotEqual(t, "pw", created.PasswordHash)

	_, err = users.Create(ctx, "Alice II", "alice@x.y", "pw2", model.RoleUser)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	require.NoError(t, users.SetRole(ctx, "alice@x.y", model.RoleAdmin))
	promoted, err := users.GetByEmail(ctx, "alice@x.y")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	require.NoError(t, users.SetDisabled(ctx, "alice@x.y", true))
	assert.ErrorIs(t, users.SetDisabled(ctx, "ghost@x.y", true), ErrUserNotFound)

	require.NoError(t, users.Delete(ctx, "alice@x.y"))
	assert.ErrorIs(t, users.Delete(ctx, "alice@x.y"), ErrUserNotFound)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	users := NewUserService(newFakeUserRepo(), zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, users.EnsureAdmin(ctx, "root@x.y", "pw"))
	require.NoError(t, users.EnsureAdmin(ctx, "root@x.y", "pw"))

	admin, err := users.GetByEmail(ctx, "root@x.y")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())

	// No bootstrap credentials, no account.
	require.NoError(t, users.EnsureAdmin(ctx, "", ""))
}
