package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mindprofile/internal/config"
	"mindprofile/internal/model"
)

// maxPromptAnswers bounds how many answers are rendered into the
// prompt, so prompt size stays bounded regardless of catalog size.
const maxPromptAnswers = 30

const defaultEvaluationText = "We could not produce a conclusive profile from this submission. " +
	"Your answers have been recorded; please try again later."

const evaluationSystemPrompt = `You are a psychometric assessor. The user answered a short ` +
	`personality questionnaire. Write a short narrative evaluation of their likely ` +
	`personality profile and rate the five traits openness, conscientiousness, ` +
	`extraversion, agreeableness and neuroticism from 0 to 100.
Respond ONLY with a JSON object of this shape:
{"evaluation": "<2-4 sentence narrative>", "scores": [<5 integers 0-100>]}`

// Evaluator produces a typed evaluation for a resolved answer map.
// Implementations never fail: on any internal error they return a
// default evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, answers model.AnswerMap) *model.Evaluation
}

// EvaluatorService calls an OpenAI-compatible chat-completion provider
// to turn an answer map into a narrative evaluation. Provider errors
// and malformed output are absorbed into the default evaluation; the
// caller always gets a well-formed result.
type EvaluatorService struct {
	api     *openai.Client
	cfg     *config.AIConfig
	log     *zap.SugaredLogger
	enabled bool
}

// NewEvaluatorService creates a new evaluator. With no API key
// configured the provider is never called and every evaluation is the
// deterministic default.
func NewEvaluatorService(cfg *config.AIConfig, log *zap.SugaredLogger) *EvaluatorService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &EvaluatorService{
		api:     openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		log:     log,
		enabled: cfg.IsEnabled(),
	}
}

// DefaultEvaluation is the safe fallback: a fixed inconclusive
// narrative and a neutral score vector (scale midpoint per trait).
func DefaultEvaluation() *model.Evaluation {
	scores := make([]int, model.TraitCount)
	for i := range scores {
		scores[i] = 50
	}
	return &model.Evaluation{
		Text:   defaultEvaluationText,
		Scores: scores,
	}
}

// Evaluate never fails to the caller. A single provider attempt is
// made, bounded by the configured timeout; any error or unusable
// output yields the default evaluation.
func (s *EvaluatorService) Evaluate(ctx context.Context, answers model.AnswerMap) *model.Evaluation {
	if !s.enabled {
		return DefaultEvaluation()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
	defer cancel()

	prompt := buildEvaluationPrompt(answers)
	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: evaluationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Errorw("provider call failed", "model", s.cfg.Model, "error", err)
		return DefaultEvaluation()
	}
	if len(resp.Choices) == 0 {
		s.log.Errorw("provider returned no choices", "model", s.cfg.Model)
		return DefaultEvaluation()
	}

	return parseEvaluation(resp.Choices[0].Message.Content, s.log)
}

// buildEvaluationPrompt renders at most maxPromptAnswers entries in
// deterministic (sorted-key) order.
func buildEvaluationPrompt(answers model.AnswerMap) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxPromptAnswers {
		keys = keys[:maxPromptAnswers]
	}

	var sb strings.Builder
	sb.WriteString("Questionnaire answers:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "- %s: %s\n", k, answers[k])
	}
	return sb.String()
}

// parseEvaluation extracts a usable evaluation from raw provider
// output. Structured JSON is validated before trust; prose is accepted
// as the narrative with default scores; anything unusable falls back
// to the full default.
func parseEvaluation(raw string, log *zap.SugaredLogger) *model.Evaluation {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultEvaluation()
	}

	var parsed model.Evaluation
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if strings.HasPrefix(raw, "{") {
			// Broken JSON is unusable, not prose.
			log.Warnw("provider output is malformed JSON", "error", err)
			return DefaultEvaluation()
		}
		// Plain prose: trust the narrative only.
		log.Warnw("provider output is not JSON, keeping prose narrative")
		eval := DefaultEvaluation()
		eval.Text = raw
		return eval
	}

	if strings.TrimSpace(parsed.Text) == "" {
		log.Warnw("provider JSON has no narrative")
		return DefaultEvaluation()
	}
	if !validScores(parsed.Scores) {
		log.Warnw("provider scores failed validation", "scores", parsed.Scores)
		eval := DefaultEvaluation()
		eval.Text = parsed.Text
		return eval
	}
	return &parsed
}

func validScores(scores []int) bool {
	if len(scores) != model.TraitCount {
		return false
	}
	for _, v := range scores {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
