package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mindprofile/internal/cache"
	"mindprofile/internal/model"
)

// AuthService issues and validates sessions. A session is a JWT whose
// claims point at a live Redis record; deleting the record revokes the
// token, and the record carries the directory-resolved role.
type AuthService struct {
	users      *UserService
	captcha    *CaptchaVerifier
	sessions   cache.SessionCache
	jwtSecret  []byte
	sessionTTL time.Duration
	log        *zap.SugaredLogger
}

// NewAuthService creates a new auth service.
func NewAuthService(users *UserService, captcha *CaptchaVerifier, sessions cache.SessionCache, jwtSecret string, sessionTTL time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:      users,
		captcha:    captcha,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Signup verifies the captcha token, registers the account with the
// default role and opens a session. The captcha gate runs before any
// side effect.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.LoginResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Confirm == "" {
		return nil, ErrMissingFields
	}
	if req.Password != req.Confirm {
		return nil, ErrInvalidCredentials
	}
	if err := s.captcha.Verify(ctx, req.Token); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, req.Password, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

// Login verifies the captcha token and the credentials, then opens a
// session carrying the account's current role.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if err := s.captcha.Verify(ctx, req.Token); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

// Logout revokes the session behind a token. Unknown tokens are a
// no-op.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// Validate parses the token and loads the live session record. A
// missing record means the session was revoked or expired.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*model.Session, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}
	return session, nil
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*model.LoginResponse, error) {
	session := &model.Session{
		ID:        uuid.New().String(),
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	claims := &model.SessionClaims{
		SessionID: session.ID,
		Email:     user.Email,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.log.Infow("session opened", "email", user.Email, "role", user.Role)
	return &model.LoginResponse{
		Token: tokenString,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *AuthService) parseToken(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
