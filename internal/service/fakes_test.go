package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// In-memory fakes for the repository and cache interfaces. Uniqueness
// violations are reported the way the driver reports them (write
// error code 11000) so the services exercise their real mapping.

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []model.Question
	nextID    int
	failIDs   map[string]bool // Delete fails for these ids
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{failIDs: map[string]bool{}}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := repository.NormalizeText(q.Text)
	for _, existing := range r.questions {
		if existing.TextKey == key {
			return duplicateKeyErr()
		}
	}
	r.nextID++
	q.ID = "q" + strconv.Itoa(r.nextID)
	q.TextKey = key
	q.CreatedAt = time.Now()
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.ID == id {
			copied := q
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) GetAll(_ context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.questions {
		if existing.ID == q.ID {
			r.questions[i].Text = q.Text
			r.questions[i].TextKey = repository.NormalizeText(q.Text)
			r.questions[i].Options = q.Options
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[id] {
		return errors.New("storage unavailable")
	}
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeQuestionRepo) EnsureIndexes(context.Context) error { return nil }

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[string]*model.Result

	upserts     int
	attaches    int
	failUpsert  bool
	failAttach  bool
	attachAfter func() // called on attach, for ordering assertions
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: map[string]*model.Result{}}
}

func (r *fakeResultRepo) UpsertAnswers(_ context.Context, email string, answers model.AnswerMap) (*model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert {
		return nil, errors.New("storage unavailable")
	}
	r.upserts++
	result := &model.Result{
		Email:     email,
		Answers:   answers,
		CreatedAt: time.Now(),
	}
	r.results[email] = result
	return result, nil
}

func (r *fakeResultRepo) AttachEvaluation(_ context.Context, email string, eval *model.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAttach {
		return errors.New("storage unavailable")
	}
	r.attaches++
	result, ok := r.results[email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	result.Evaluation = eval.Text
	result.Scores = eval.Scores
	if r.attachAfter != nil {
		r.attachAfter()
	}
	return nil
}

func (r *fakeResultRepo) GetByEmail(_ context.Context, email string) (*model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.results[email]
	if !ok {
		return nil, nil
	}
	copied := *result
	return &copied, nil
}

func (r *fakeResultRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.results)), nil
}

func (r *fakeResultRepo) EnsureIndexes(context.Context) error { return nil }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return duplicateKeyErr()
	}
	u.ID = "u-" + u.Email
	u.CreatedAt = time.Now()
	copied := *u
	r.users[u.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetAll(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.Email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	existing.Name = u.Name
	if u.PasswordHash != "" {
		existing.PasswordHash = u.PasswordHash
	}
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, email string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) SetDisabled(_ context.Context, email string, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Disabled = disabled
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.users, email)
	return nil
}

func (r *fakeUserRepo) EnsureIndexes(context.Context) error { return nil }

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]*model.Session{}}
}

func (c *fakeSessionCache) Set(_ context.Context, s *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *s
	c.sessions[s.ID] = &copied
	return nil
}

func (c *fakeSessionCache) Get(_ context.Context, id string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (c *fakeSessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

type fakeSnapshotCache struct {
	mu        sync.Mutex
	snapshots map[string]*model.Snapshot
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{snapshots: map[string]*model.Snapshot{}}
}

func (c *fakeSnapshotCache) Set(_ context.Context, s *model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *s
	c.snapshots[s.ID] = &copied
	return nil
}

func (c *fakeSnapshotCache) Get(_ context.Context, id string) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.snapshots[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

// stubEvaluator returns a canned evaluation and records what it saw.
type stubEvaluator struct {
	mu       sync.Mutex
	eval     *model.Evaluation
	calls    int
	lastSeen model.AnswerMap
	onCall   func()
}

func (e *stubEvaluator) Evaluate(_ context.Context, answers model.AnswerMap) *model.Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.lastSeen = answers
	if e.onCall != nil {
		e.onCall()
	}
	if e.eval != nil {
		return e.eval
	}
	return DefaultEvaluation()
}
