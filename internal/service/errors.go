package service

import "errors"

var (
	// Catalog errors.
	ErrDuplicateQuestion = errors.New("a question with this text already exists")
	ErrQuestionNotFound  = errors.New("question not found")

	// Submission errors.
	ErrEmptySubmission = errors.New("submission resolved to no answers")
	ErrStaleSnapshot   = errors.New("snapshot expired, reload the assessment")

	// Result errors.
	ErrResultNotFound = errors.New("no result for this identity")

	// Directory and auth errors.
	ErrDuplicateUser      = errors.New("a user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrCaptchaFailed      = errors.New("reCAPTCHA verification failed")

	ErrMissingFields = errors.New("missing required fields")
)
