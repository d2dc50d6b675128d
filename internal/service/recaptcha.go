package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindprofile/internal/config"
)

// CaptchaVerifier gates signup and login through the bot-verification
// service: the token must verify with success and a score at or above
// the configured minimum. With no secret configured the gate is open.
type CaptchaVerifier struct {
	cfg    *config.RecaptchaConfig
	client *http.Client
	log    *zap.SugaredLogger
}

// NewCaptchaVerifier creates a new verifier.
func NewCaptchaVerifier(cfg *config.RecaptchaConfig, log *zap.SugaredLogger) *CaptchaVerifier {
	return &CaptchaVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// Verify checks a client token. Any failure, upstream or score-based,
// is reported as ErrCaptchaFailed.
func (v *CaptchaVerifier) Verify(ctx context.Context, token string) error {
	if v.cfg.Secret == "" {
		return nil
	}
	if token == "" {
		return ErrCaptchaFailed
	}

	form := url.Values{}
	form.Set("secret", v.cfg.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Errorw("captcha verify request failed", "error", err)
		return ErrCaptchaFailed
	}
	defer resp.Body.Close()

	var verdict struct {
		Success bool    `json:"success"`
		Score   float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		v.log.Errorw("captcha verify response unreadable", "error", err)
		return ErrCaptchaFailed
	}

	if !verdict.Success || verdict.Score < v.cfg.MinScore {
		v.log.Infow("captcha rejected", "success", verdict.Success, "score", verdict.Score)
		return ErrCaptchaFailed
	}
	return nil
}
